package handler

import (
	"net/http"

	"credon/internal/middleware"
	"credon/internal/repository"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	userRepo     *repository.UserRepository
	referralRepo *repository.ReferralRepository
}

func NewReferralHandler(userRepo *repository.UserRepository, referralRepo *repository.ReferralRepository) *ReferralHandler {
	return &ReferralHandler{userRepo: userRepo, referralRepo: referralRepo}
}

// MyReferrals returns the caller's code, direct downline and bonus totals.
func (h *ReferralHandler) MyReferrals(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	direct, err := h.userRepo.ListDirectReferrals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load referrals"})
		return
	}
	earned, err := h.referralRepo.SumEarned(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bonus total"})
		return
	}
	type entry struct {
		FullName  string `json:"full_name"`
		Email     string `json:"email"`
		CreatedAt string `json:"created_at"`
	}
	referrals := make([]entry, 0, len(direct))
	for _, r := range direct {
		referrals = append(referrals, entry{
			FullName:  r.FullName,
			Email:     maskEmail(r.Email),
			CreatedAt: r.CreatedAt.Format("2006-01-02"),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"referral_code":      u.ReferralCode,
		"direct_referrals":   len(direct),
		"total_bonus_earned": earned,
		"referrals":          referrals,
	})
}

// maskEmail hides most of the local part: jane.doe@x.com -> ja****@x.com.
func maskEmail(email string) string {
	for i, ch := range email {
		if ch == '@' {
			if i <= 2 {
				return "****" + email[i:]
			}
			return email[:2] + "****" + email[i:]
		}
	}
	return email
}
