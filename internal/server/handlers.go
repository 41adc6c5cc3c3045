package server

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Cordxll/Resume-Builder/internal/export"
	"github.com/Cordxll/Resume-Builder/internal/ingestion"
	"github.com/Cordxll/Resume-Builder/internal/pipeline"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

// handleParseResume segments an uploaded file or pasted text
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	text, meta, err := s.readResumeUpload(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	doc, err := s.segmenter.Segment(text)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ParseResumeResponse{
		Document: doc,
		Metadata: meta,
		Notices:  nonNilNotices(pipeline.SegmentNotices(doc)),
	})
}

// readResumeUpload accepts a multipart "file", a form "text" field or a JSON body
func (s *Server) readResumeUpload(r *http.Request) (string, *ingestion.Metadata, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return "", nil, err
			}
			return "", nil, &ErrValidation{Message: "invalid multipart form"}
		}

		file, header, err := r.FormFile("file")
		if errors.Is(err, http.ErrMissingFile) {
			return ingestPasted(r.FormValue("text"))
		}
		if err != nil {
			return "", nil, &ErrValidation{Field: "file", Message: err.Error()}
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			return "", nil, err
		}
		return ingestion.Ingest(header.Filename, header.Header.Get("Content-Type"), data)

	case "application/x-www-form-urlencoded":
		return ingestPasted(r.PostFormValue("text"))

	default:
		var req ParseResumeRequest
		if err := s.validator.decodeJSON(r, &req); err != nil {
			return "", nil, err
		}
		return ingestPasted(req.Text)
	}
}

// ingestPasted cleans pasted text, stripping markup when it is HTML
func ingestPasted(text string) (string, *ingestion.Metadata, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil, &ErrValidation{Field: "text", Message: "required"}
	}
	return ingestion.Ingest("", "", []byte(text))
}

// cleanJobDescription accepts plain text or a pasted HTML posting
func cleanJobDescription(text string) (string, error) {
	cleaned, _, err := ingestion.Ingest("", "", []byte(text))
	if err != nil {
		return "", err
	}
	if cleaned == "" {
		return "", &ErrValidation{Field: "job_description", Message: "required"}
	}
	return cleaned, nil
}

// handleAnalyzeJob extracts requirements, seniority and responsibilities
func (s *Server) handleAnalyzeJob(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req AnalyzeJobRequest
	if err := s.validator.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	job, err := cleanJobDescription(req.JobDescription)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.extractor.AnalyzeJob(job))
}

// handleTailorResume runs the pipeline and opens an edit session
func (s *Server) handleTailorResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req TailorRequest
	if err := s.validator.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	resume, _, err := ingestPasted(req.ResumeText)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	job, err := cleanJobDescription(req.JobDescription)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	result, err := pipeline.Run(r.Context(), resume, job, s.pipelineOptions())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	id, _, err := s.sessions.Create(r.Context(), result)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	token, err := s.tokens.Issue(id)
	if err != nil {
		_ = s.sessions.Delete(r.Context(), id)
		s.errorResponse(w, r, err)
		return
	}

	sections, err := sectionViews(result.Store)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.logger.Info("tailoring session opened",
		zap.String("session_id", id),
		zap.Int("notices", len(result.Notices)))

	s.jsonResponse(w, http.StatusCreated, SessionResponse{
		SessionID:    id,
		Token:        token,
		Contact:      result.Document.Contact,
		Sections:     sections,
		Requirements: result.Analysis.Requirements,
		Analysis:     result.Analysis,
		Notices:      nonNilNotices(result.Notices),
	})
}

// handleExportDocument renders a client-supplied section map without a session
func (s *Server) handleExportDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req ExportDocumentRequest
	if err := s.validator.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	for kind, content := range req.Sections {
		if !kind.Valid() {
			s.errorResponse(w, r, &ErrValidation{Field: "sections", Message: "unknown section " + string(kind)})
			return
		}
		if content.Shape != kind.Shape() {
			s.errorResponse(w, r, &ErrValidation{Field: "sections", Message: string(kind) + " must be " + string(kind.Shape())})
			return
		}
		if err := content.Validate(); err != nil {
			s.errorResponse(w, r, &ErrValidation{Field: "sections", Message: err.Error()})
			return
		}
	}

	doc := &types.ResumeDocument{Contact: req.Contact, Sections: req.Sections}
	s.writeExport(w, r, export.Merge(doc, nil), r.URL.Query().Get("format"))
}

// writeExport renders final as DOCX or plain text
func (s *Server) writeExport(w http.ResponseWriter, r *http.Request, final *export.FinalSectionMap, format string) {
	var buf bytes.Buffer
	contentType := export.DOCXContentType
	filename := "resume.docx"

	switch format {
	case "", "docx":
		if err := export.WriteDOCX(&buf, final); err != nil {
			s.errorResponse(w, r, err)
			return
		}
	case "txt", "text":
		if err := export.WriteText(&buf, final); err != nil {
			s.errorResponse(w, r, err)
			return
		}
		contentType = "text/plain; charset=utf-8"
		filename = "resume.txt"
	default:
		s.errorResponse(w, r, &ErrValidation{Field: "format", Message: "must be docx or txt"})
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Warn("failed to write export", zap.Error(err))
	}
}

func nonNilNotices(notices []types.Notice) []types.Notice {
	if notices == nil {
		return []types.Notice{}
	}
	return notices
}
