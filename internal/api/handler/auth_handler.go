package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/buzzboard/internal/service"
	"github.com/d60-Lab/buzzboard/pkg/response"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=2,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an unverified account and mails a verification link.
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "registration form"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": user.ID, "email": user.Email})
}

type verifyEmailRequest struct {
	VerificationToken string `json:"verification_token" binding:"required"`
}

// VerifyEmail redeems an email-verification token.
// @Summary Verify account email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body verifyEmailRequest true "verification token"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/register/verify [post]
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.users.VerifyEmail(c.Request.Context(), req.VerificationToken); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "account verified successfully"})
}

type resendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResendVerification re-sends the verification mail for an unverified account.
// @Summary Resend email verification
// @Tags auth
// @Accept json
// @Produce json
// @Param request body resendVerificationRequest true "account email"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/register/verify/resend [post]
func (h *Handler) ResendVerification(c *gin.Context) {
	var req resendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.users.ResendVerification(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "email verification token resent"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a bearer token.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, _, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"access_token": token, "token_type": "bearer"})
}

type passwordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestPasswordReset mails a password-reset link.
// @Summary Request password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body passwordResetRequest true "account email"
// @Success 200 {object} response.Response
// @Router /api/v1/password_reset [post]
func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req passwordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.users.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "password reset mail sent"})
}

type passwordResetRedeemRequest struct {
	ResetToken  string `json:"reset_token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword redeems a reset token and sets the new password.
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body passwordResetRedeemRequest true "reset token and new password"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/password_reset/redeem [post]
func (h *Handler) ResetPassword(c *gin.Context) {
	var req passwordResetRedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.users.ResetPassword(c.Request.Context(), req.ResetToken, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "password changed successfully"})
}
