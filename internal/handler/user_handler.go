package handler

import (
	"net/http"

	"credon/internal/middleware"
	"credon/internal/repository"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userRepo   *repository.UserRepository
	walletRepo *repository.WalletRepository
}

func NewUserHandler(userRepo *repository.UserRepository, walletRepo *repository.WalletRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo, walletRepo: walletRepo}
}

func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.userRepo.GetByID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Wallet(c *gin.Context) {
	w, err := h.walletRepo.GetOrCreate(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "wallet error"})
		return
	}
	c.JSON(http.StatusOK, w)
}
