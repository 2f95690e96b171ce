package handler

import (
	"net/http"
	"time"

	certapp "github.com/edustack/backend/internal/application/certificate"
	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/edustack/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CertificateHandler handles certificate issuance and public verification
type CertificateHandler struct {
	BaseHandler
	issuer       *certapp.IssuerService
	verification *certapp.VerificationService
}

// NewCertificateHandler creates a new CertificateHandler
func NewCertificateHandler(issuer *certapp.IssuerService, verification *certapp.VerificationService) *CertificateHandler {
	return &CertificateHandler{issuer: issuer, verification: verification}
}

// RegisterRoutes registers certificate routes
func (h *CertificateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	certificates := rg.Group("/certificates")
	{
		certificates.POST("/claim", h.Claim)
		certificates.GET("/:serial/verify", h.Verify)
	}
}

// ClaimRequest asks for a certificate on a completed achievement
type ClaimRequest struct {
	AchievementID string `json:"achievement_id" binding:"required,uuid"`
	Type          string `json:"type" binding:"omitempty,oneof=course learning_path"`
}

// ClaimResponse reports the issuance outcome. issued=false means the
// achievement is not finished yet; clients poll after further progress.
type ClaimResponse struct {
	Issued         bool   `json:"issued"`
	NewlyGenerated bool   `json:"newly_generated"`
	Serial         string `json:"serial,omitempty"`
}

// Claim godoc
//
//	@ID				claimCertificate
//	@Summary		Claim a certificate
//	@Description	Issue the certificate for a completed achievement, at most once per achievement
//	@Tags			certificates
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ClaimRequest	true	"Claim request"
//	@Success		200		{object}	dto.Response{data=ClaimResponse}
//	@Failure		403		{object}	dto.Response	"No qualifying purchase or subscription"
//	@Router			/certificates/claim [post]
func (h *CertificateHandler) Claim(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}
	achievementID, err := uuid.Parse(req.AchievementID)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid achievement id")
		return
	}
	certType := catalog.CertificateType(req.Type)
	if req.Type == "" {
		certType = catalog.CertificateTypeCourse
	}

	result, err := h.issuer.Issue(c.Request.Context(), userID, achievementID, certType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := ClaimResponse{Issued: result.Issued, NewlyGenerated: result.NewlyGenerated}
	if result.Certificate != nil {
		resp.Serial = result.Certificate.Serial
	}
	h.Success(c, resp)
}

// VerifyResponse is the public, redacted view of a certificate
type VerifyResponse struct {
	Status           string     `json:"status" example:"valid"`
	Serial           string     `json:"serial,omitempty"`
	HolderName       string     `json:"holder_name,omitempty"`
	AchievementTitle string     `json:"achievement_title,omitempty"`
	IssuedAt         *time.Time `json:"issued_at,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}

// Verify godoc
//
//	@ID				verifyCertificate
//	@Summary		Verify a certificate
//	@Description	Public verification of a certificate by its serial, no authentication required
//	@Tags			certificates
//	@Produce		json
//	@Param			serial	path		string	true	"Certificate serial"
//	@Success		200		{object}	dto.Response{data=VerifyResponse}
//	@Router			/certificates/{serial}/verify [get]
func (h *CertificateHandler) Verify(c *gin.Context) {
	serial := c.Param("serial")
	if serial == "" {
		h.BadRequest(c, "Missing certificate serial")
		return
	}

	result, err := h.verification.Verify(c.Request.Context(), serial)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, VerifyResponse{
		Status:           string(result.Status),
		Serial:           result.Serial,
		HolderName:       result.HolderName,
		AchievementTitle: result.AchievementTitle,
		IssuedAt:         result.IssuedAt,
		ExpiresAt:        result.ExpiresAt,
	})
}
