package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Cordxll/Resume-Builder/internal/export"
	"github.com/Cordxll/Resume-Builder/internal/pipeline"
	"github.com/Cordxll/Resume-Builder/internal/session"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

// sectionKind reads the {kind} path value
func sectionKind(r *http.Request) (types.SectionKind, error) {
	kind, err := types.ParseSectionKind(r.PathValue("kind"))
	if err != nil {
		return "", &ErrValidation{Field: "kind", Message: err.Error()}
	}
	return kind, nil
}

// handleGetSession returns the full state of a session
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var resp SessionResponse
	err := s.sessions.View(r.Context(), id, func(st *session.State) error {
		sections, err := sectionViews(st.Store)
		if err != nil {
			return err
		}
		resp = SessionResponse{
			SessionID:    id,
			Contact:      st.Document.Contact,
			Sections:     sections,
			Requirements: st.Requirements,
			Notices:      nonNilNotices(st.Notices),
			Document:     st.Document,
		}
		return nil
	})
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDeleteSession ends a session
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRetailor tailors the session's resume to a new job description.
// Previous decisions and overrides are discarded.
func (s *Server) handleRetailor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req RetailorRequest
	if err := s.validator.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	job, err := cleanJobDescription(req.JobDescription)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	var resumeText string
	if err := s.sessions.View(r.Context(), id, func(st *session.State) error {
		resumeText = st.Document.RawText
		return nil
	}); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	result, err := pipeline.Run(r.Context(), resumeText, job, s.pipelineOptions())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if _, err := s.sessions.Replace(r.Context(), id, result); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	sections, err := sectionViews(result.Store)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.logger.Info("session retailored", zap.String("session_id", id))
	s.jsonResponse(w, http.StatusOK, SessionResponse{
		SessionID:    id,
		Contact:      result.Document.Contact,
		Sections:     sections,
		Requirements: result.Analysis.Requirements,
		Analysis:     result.Analysis,
		Notices:      nonNilNotices(result.Notices),
	})
}

// updateSection applies edit to one section and responds with its new view
func (s *Server) updateSection(w http.ResponseWriter, r *http.Request, edit func(st *session.State, kind types.SectionKind) error) {
	kind, err := sectionKind(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	var view SectionView
	_, err = s.sessions.Update(r.Context(), r.PathValue("id"), func(st *session.State) error {
		if err := edit(st, kind); err != nil {
			return err
		}
		v, err := sectionView(st.Store, kind)
		view = v
		return err
	})
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SectionResponse{Section: view})
}

// handleToggleSection flips a section between tailored and original
func (s *Server) handleToggleSection(w http.ResponseWriter, r *http.Request) {
	s.updateSection(w, r, func(st *session.State, kind types.SectionKind) error {
		_, err := st.Store.ToggleAccept(kind)
		return err
	})
}

// handleSetAccepted records an explicit accept or reject
func (s *Server) handleSetAccepted(w http.ResponseWriter, r *http.Request) {
	var req AcceptedRequest
	if err := s.validator.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.updateSection(w, r, func(st *session.State, kind types.SectionKind) error {
		return st.Store.SetAccepted(kind, *req.Accepted)
	})
}

// handleSetOverride stores user-written content for a section
func (s *Server) handleSetOverride(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req OverrideRequest
	if err := s.validator.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.updateSection(w, r, func(st *session.State, kind types.SectionKind) error {
		return st.Store.SetOverride(kind, req.Content())
	})
}

// handleClearOverride drops a section's user-written content
func (s *Server) handleClearOverride(w http.ResponseWriter, r *http.Request) {
	s.updateSection(w, r, func(st *session.State, kind types.SectionKind) error {
		return st.Store.ClearOverride(kind)
	})
}

// merged builds the final section map of a session
func (s *Server) merged(r *http.Request) (*export.FinalSectionMap, error) {
	var final *export.FinalSectionMap
	err := s.sessions.View(r.Context(), r.PathValue("id"), func(st *session.State) error {
		final = export.Merge(st.Document, st.Store)
		return nil
	})
	return final, err
}

// handleResolved returns the final section map as JSON
func (s *Server) handleResolved(w http.ResponseWriter, r *http.Request) {
	final, err := s.merged(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, final)
}

// handleExportSession renders the session's accepted state as DOCX or text
func (s *Server) handleExportSession(w http.ResponseWriter, r *http.Request) {
	final, err := s.merged(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.writeExport(w, r, final, r.URL.Query().Get("format"))
}
