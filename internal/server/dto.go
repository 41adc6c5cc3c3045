package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Cordxll/Resume-Builder/internal/ingestion"
	"github.com/Cordxll/Resume-Builder/internal/reconcile"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

// ParseResumeRequest is the JSON form of a pasted resume
type ParseResumeRequest struct {
	Text string `json:"text" validate:"required"`
}

// AnalyzeJobRequest carries a job description
type AnalyzeJobRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
}

// TailorRequest starts a tailoring session
type TailorRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

// RetailorRequest reruns a session's resume against a job description
type RetailorRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
}

// AcceptedRequest records an explicit accept or reject decision
type AcceptedRequest struct {
	Accepted *bool `json:"accepted" validate:"required"`
}

// OverrideRequest replaces a section with user text. Exactly one field is set,
// matching the section's shape.
type OverrideRequest struct {
	Text    *string  `json:"text" validate:"required_without=Bullets,excluded_with=Bullets"`
	Bullets []string `json:"bullets" validate:"required_without=Text,dive,required"`
}

// Content converts the request into section content
func (r OverrideRequest) Content() types.Content {
	if r.Text != nil {
		return types.TextContent(strings.TrimSpace(*r.Text))
	}
	bullets := make([]string, 0, len(r.Bullets))
	for _, b := range r.Bullets {
		if b = strings.TrimSpace(b); b != "" {
			bullets = append(bullets, b)
		}
	}
	return types.BulletContent(bullets...)
}

// ExportDocumentRequest is a complete section map for stateless export
type ExportDocumentRequest struct {
	Contact  types.Contact                       `json:"contact"`
	Sections map[types.SectionKind]types.Content `json:"sections" validate:"required"`
}

// ParseResumeResponse is the result of segmenting an upload
type ParseResumeResponse struct {
	Document *types.ResumeDocument `json:"document"`
	Metadata *ingestion.Metadata   `json:"metadata,omitempty"`
	Notices  []types.Notice        `json:"notices"`
}

// SectionView is one section's edit state as the UI shows it
type SectionView struct {
	Kind      types.SectionKind `json:"kind"`
	Original  types.Content     `json:"original"`
	Tailored  types.Content     `json:"tailored"`
	Changes   []string          `json:"changes"`
	Accepted  bool              `json:"accepted"`
	Override  *types.Content    `json:"override,omitempty"`
	Effective types.Content     `json:"effective"`
}

// SessionResponse describes a session
type SessionResponse struct {
	SessionID    string                `json:"session_id"`
	Token        string                `json:"token,omitempty"`
	Contact      types.Contact         `json:"contact"`
	Sections     []SectionView         `json:"sections"`
	Requirements []types.Requirement   `json:"requirements"`
	Analysis     *types.JobAnalysis    `json:"analysis,omitempty"`
	Notices      []types.Notice        `json:"notices"`
	Document     *types.ResumeDocument `json:"document,omitempty"`
}

// SectionResponse is returned by per-section edits
type SectionResponse struct {
	Section SectionView `json:"section"`
}

func sectionViews(store *reconcile.Store) ([]SectionView, error) {
	kinds := store.Kinds()
	views := make([]SectionView, 0, len(kinds))
	for _, kind := range kinds {
		view, err := sectionView(store, kind)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func sectionView(store *reconcile.Store, kind types.SectionKind) (SectionView, error) {
	state, err := store.State(kind)
	if err != nil {
		return SectionView{}, err
	}
	effective, err := store.Resolve(kind)
	if err != nil {
		return SectionView{}, err
	}
	return SectionView{
		Kind:      kind,
		Original:  state.Original,
		Tailored:  state.Tailored,
		Changes:   state.Changes,
		Accepted:  state.Accepted,
		Override:  state.Override,
		Effective: effective,
	}, nil
}

// requestValidator checks request DTOs
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report JSON keys rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

// decodeJSON reads a JSON body into dst and validates it
func (v *requestValidator) decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Message: "request body is empty"}
		}
		return &ErrValidation{Message: fmt.Sprintf("invalid request body: %v", err)}
	}
	return v.check(dst)
}

func (v *requestValidator) check(req any) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			// first error is enough for the client
			ve := validationErrors[0]
			return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
		}
		return &ErrValidation{Message: "invalid request"}
	}
	return nil
}
