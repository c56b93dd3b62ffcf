// pkg/api/profile.go

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/bizbooks-service/pkg/profile"
	"github.com/bizbooks-service/pkg/storage"
)

type profileRequest struct {
	CompanyName  string `json:"company_name" validate:"max=200"`
	Address      string `json:"address" validate:"max=500"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"max=50"`
	TaxID        string `json:"tax_id" validate:"max=50"`
	BusinessType string `json:"business_type" validate:"max=100"`
}

var logoMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.GetProfile(r.Context(), sessionFrom(r))
	if err != nil {
		h.writeError(w, r, "getProfile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// saveProfile godoc
// @Summary Create or replace the business profile
// @Description The logo reference is kept; upload a logo separately.
// @Tags profile
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param profile body profileRequest true "Profile"
// @Success 200 {object} profile.CompanyProfile
// @Failure 400 {object} errorBody
// @Router /profile [put]
func (h *Handler) saveProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, "saveProfile", err)
		return
	}
	sess := sessionFrom(r)
	p, err := h.currentProfile(r, sess.UserID)
	if err != nil {
		h.writeError(w, r, "saveProfile", err)
		return
	}
	p.CompanyName = req.CompanyName
	p.Address = req.Address
	p.Email = req.Email
	p.Phone = req.Phone
	p.TaxID = req.TaxID
	p.BusinessType = req.BusinessType
	if err := h.repo.SaveProfile(r.Context(), sess, p); err != nil {
		h.writeError(w, r, "saveProfile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// currentProfile returns the stored profile or a blank one for the user.
func (h *Handler) currentProfile(r *http.Request, userID string) (*profile.CompanyProfile, error) {
	p, err := h.repo.GetProfile(r.Context(), sessionFrom(r))
	if errors.Is(err, profile.ErrProfileNotFound) {
		return &profile.CompanyProfile{UserID: userID}, nil
	}
	return p, err
}

// uploadLogo godoc
// @Summary Upload the company logo
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param logo formData file true "PNG or JPEG"
// @Success 200 {object} profile.CompanyProfile
// @Failure 400 {object} errorBody
// @Router /profile/logo [post]
func (h *Handler) uploadLogo(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	p, err := h.currentProfile(r, sess.UserID)
	if err != nil {
		h.writeError(w, r, "uploadLogo", err)
		return
	}
	key, ok := h.upload(w, r, "logo", storage.KindLogos, logoMimeTypes)
	if !ok {
		return
	}
	p.LogoRef = key
	if err := h.repo.SaveProfile(r.Context(), sess, p); err != nil {
		h.writeError(w, r, "uploadLogo", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// upload stores the multipart file under field and returns its object key.
// It writes the error response itself when ok is false.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request, field, kind string, allowed map[string]bool) (key string, ok bool) {
	if h.objects == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "object storage is not configured"})
		return "", false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeBadRequest(w, "file is too large or the form is malformed")
		return "", false
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		writeBadRequest(w, "missing "+field+" file")
		return "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeBadRequest(w, "unable to read "+field+" file")
		return "", false
	}
	contentType := http.DetectContentType(data)
	if !allowed[contentType] {
		writeBadRequest(w, "unsupported file type "+contentType)
		return "", false
	}

	sess := sessionFrom(r)
	key, err = storage.UploadKey(sess.UserID, kind, header.Filename)
	if err != nil {
		h.writeError(w, r, "upload", err)
		return "", false
	}
	if err := h.objects.Put(r.Context(), key, bytes.NewReader(data), contentType); err != nil {
		h.writeError(w, r, "upload", err)
		return "", false
	}
	return key, true
}
