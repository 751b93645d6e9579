package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/profile"
)

const (
	msgNoFile     = "No file provided"
	msgTooLarge   = "File too large"
	msgProcessCV  = "Error processing CV"
	msgSearchJobs = "Error searching for jobs"
	msgSubmitApps = "Error submitting applications"
	cvFormField   = "cv"
)

type uploadResponse struct {
	Success   bool          `json:"success"`
	CVContent string        `json:"cvContent"`
	Profile   model.Profile `json:"profile"`
}

// profileFields accepts the profile under either key the clients send.
type profileFields struct {
	Profile     *model.Profile `json:"profile"`
	UserProfile *model.Profile `json:"userProfile"`
}

func (p profileFields) resolve() model.Profile {
	switch {
	case p.Profile != nil:
		return *p.Profile
	case p.UserProfile != nil:
		return *p.UserProfile
	default:
		return model.Profile{}
	}
}

type searchRequest struct {
	JobTitle  string `json:"jobTitle"`
	Location  string `json:"location"`
	Keywords  string `json:"keywords"`
	CVContent string `json:"cvContent"`
	profileFields
}

type searchResponse struct {
	Success    bool               `json:"success"`
	Jobs       []model.JobPosting `json:"jobs"`
	TotalFound int                `json:"totalFound"`
}

type applyRequest struct {
	Jobs      []model.JobPosting `json:"jobs" binding:"required"`
	CVContent string             `json:"cvContent"`
	profileFields
}

type applyResponse struct {
	Success      bool                `json:"success"`
	Applications []model.Application `json:"applications"`
	TotalApplied int                 `json:"totalApplied"`
}

func errorBody(msg string) gin.H {
	return gin.H{"success": false, "error": msg}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleUploadCV(c *gin.Context) {
	filename, data, err := readUpload(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, errorBody(msgTooLarge))
		case errors.Is(err, model.ErrNoFile):
			s.logger.Warn("upload without file", "error", err)
			c.JSON(http.StatusBadRequest, errorBody(msgNoFile))
		default:
			s.logger.Error("read uploaded file", "filename", filename, "error", err)
			c.JSON(http.StatusInternalServerError, errorBody(msgProcessCV))
		}
		return
	}

	res, err := profile.Ingest(data)
	if err != nil {
		s.logger.Error("ingest cv", "filename", filename, "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(msgProcessCV))
		return
	}

	s.logger.Info("cv uploaded",
		"filename", filename,
		"bytes", len(data),
		"skills", len(res.Profile.Skills),
	)
	c.JSON(http.StatusOK, uploadResponse{Success: true, CVContent: res.CVContent, Profile: res.Profile})
}

// readUpload returns the name and bytes of the cv form file. A request without
// that field yields model.ErrNoFile; a zero-byte file is returned as empty data.
func readUpload(c *gin.Context) (string, []byte, error) {
	fh, err := c.FormFile(cvFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("%w: %v", model.ErrNoFile, err)
	}

	f, err := fh.Open()
	if err != nil {
		return fh.Filename, nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fh.Filename, nil, fmt.Errorf("read upload: %w", err)
	}
	return fh.Filename, data, nil
}

func (s *Server) handleSearchJobs(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Warn("bad search request", "error", err)
		c.JSON(http.StatusBadRequest, errorBody(msgSearchJobs))
		return
	}

	res, err := s.searcher.Search(c.Request.Context(), model.SearchQuery{
		JobTitle:  req.JobTitle,
		Location:  req.Location,
		Keywords:  req.Keywords,
		CVContent: req.CVContent,
		Profile:   req.resolve(),
	})
	if err != nil {
		s.logger.Error("search failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(msgSearchJobs))
		return
	}

	c.JSON(http.StatusOK, searchResponse{Success: true, Jobs: res.Jobs, TotalFound: res.TotalFound})
}

func (s *Server) handleAutoApply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				s.logger.Warn("invalid apply request", "field", fe.Field(), "rule", fe.Tag())
			}
		} else {
			s.logger.Warn("bad apply request", "error", err)
		}
		c.JSON(http.StatusBadRequest, errorBody(msgSubmitApps))
		return
	}

	// A started batch runs to completion even if the client goes away.
	ctx := context.WithoutCancel(c.Request.Context())

	res, err := s.applier.Apply(ctx, req.Jobs, req.CVContent, req.resolve())
	if err != nil {
		s.logger.Error("apply failed", "jobs", len(req.Jobs), "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(msgSubmitApps))
		return
	}

	c.JSON(http.StatusOK, applyResponse{Success: true, Applications: res.Applications, TotalApplied: res.TotalApplied})
}
