package handler

import (
	"net/http"

	"github.com/Admintools08/BP/internal/apperror"
	"github.com/Admintools08/BP/internal/clock"
	"github.com/Admintools08/BP/internal/ctxkeys"
	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/service"
	"github.com/Admintools08/BP/internal/storage"
	"github.com/Admintools08/BP/internal/validation"
)

// Multipart bodies above this are rejected before validation sees the file.
const maxUploadBytes = 11 << 20

type MilestoneHandler struct {
	milestoneService   *service.MilestoneService
	progressService    *service.ProgressService
	certificateService *service.CertificateService
	clock              clock.Clock
	targetHours        float64
}

func NewMilestoneHandler(
	milestoneService *service.MilestoneService,
	progressService *service.ProgressService,
	certificateService *service.CertificateService,
	clk clock.Clock,
	targetHours float64,
) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneService:   milestoneService,
		progressService:    progressService,
		certificateService: certificateService,
		clock:              clk,
		targetHours:        targetHours,
	}
}

// List returns all milestones, or only those of ?month=YYYY-MM.
func (h *MilestoneHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	month := r.URL.Query().Get("month")
	if month == "" {
		milestones, err := h.milestoneService.Milestones(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, milestones)
		return
	}

	year, m, err := validation.ParseMonth("month", month)
	if err != nil {
		writeError(w, r, err)
		return
	}

	milestones, err := h.progressService.MilestonesForMonth(r.Context(), userID, year, m)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, milestones)
}

func (h *MilestoneHandler) CurrentMonth(w http.ResponseWriter, r *http.Request) {
	progress, err := h.progressService.CurrentMonthProgress(r.Context(), ctxkeys.UserID(r.Context()), h.clock.Now(), h.targetHours)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (h *MilestoneHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.MilestoneInput
	err := decodeJSON(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	milestone, err := h.milestoneService.Create(r.Context(), ctxkeys.UserID(r.Context()), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, milestone)
}

func (h *MilestoneHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.milestoneService.Milestone(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *MilestoneHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in model.MilestoneUpdate
	err := decodeJSON(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	milestone, err := h.milestoneService.Update(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, milestone)
}

func (h *MilestoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.milestoneService.Delete(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadCertificate accepts a multipart form with the artifact in the "file" field.
func (h *MilestoneHandler) UploadCertificate(w http.ResponseWriter, r *http.Request) {
	if !h.certificateService.Enabled() {
		writeError(w, r, storage.ErrStorageDisabled)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	err := r.ParseMultipartForm(maxUploadBytes)
	if err != nil {
		writeError(w, r, apperror.Validation("file", "invalid multipart upload"))
		return
	}

	_, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, apperror.Validation("file", "file is required"))
		return
	}

	milestone, err := h.certificateService.UploadCertificate(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"), header)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, milestone)
}
