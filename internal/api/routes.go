package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tenantrights-ai/backend/internal/ai"
	"tenantrights-ai/backend/internal/analysis"
	"tenantrights-ai/backend/internal/chat"
	"tenantrights-ai/backend/internal/extract"
	"tenantrights-ai/backend/internal/lang"
	"tenantrights-ai/backend/internal/letters"
	"tenantrights-ai/backend/internal/report"
	"tenantrights-ai/backend/internal/storage"
	"tenantrights-ai/backend/internal/store"
	"tenantrights-ai/backend/internal/util"
)

const defaultMaxUploadBytes = 10 << 20

// Config defines server dependencies.
type Config struct {
	DBPath         string
	SilentDB       bool
	AllowedOrigins []string
	DisableAI      bool
	Gemini         ai.GeminiConfig
	OpenAI         ai.OpenAIConfig
	Archive        *storage.Archive
	Extractor      extract.Extractor
	MaxUploadBytes int64
}

// Server wires HTTP handlers with persistence, extraction, and analysis.
type Server struct {
	db             *store.Database
	extractor      extract.Extractor
	analyzer       *analysis.Analyzer
	chatSvc        *chat.Service
	letterSvc      *letters.Service
	archive        *storage.Archive
	notifier       *AnalysisNotifier
	allowedOrigins []string
	maxUploadBytes int64
}

// NewServer constructs the API server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("db path required")
	}
	db, err := store.Open(cfg.DBPath, cfg.SilentDB)
	if err != nil {
		return nil, err
	}

	var assistant ai.Assistant
	if cfg.DisableAI {
		logrus.Info("AI analysis disabled via configuration")
	} else {
		var primary, fallback ai.Assistant
		if gemini, err := ai.NewGemini(cfg.Gemini); err == nil {
			primary = gemini
		} else if !errors.Is(err, ai.ErrDisabled) {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		if openai, err := ai.NewOpenAI(cfg.OpenAI); err == nil {
			fallback = openai
		} else if !errors.Is(err, ai.ErrDisabled) {
			return nil, fmt.Errorf("openai client: %w", err)
		}
		assistant = ai.WithFallback(primary, fallback)
		if assistant == nil || !assistant.Enabled() {
			logrus.Info("no AI provider configured - running in demo mode")
		} else {
			logrus.WithFields(logrus.Fields{
				"gemini": primary != nil,
				"openai": fallback != nil,
			}).Info("AI providers configured")
		}
	}

	extractor := cfg.Extractor
	if extractor == nil {
		extractor = extract.NewCommandExtractor()
	}

	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}

	return &Server{
		db:             db,
		extractor:      extractor,
		analyzer:       analysis.NewAnalyzer(assistant),
		chatSvc:        chat.NewService(assistant, db),
		letterSvc:      letters.NewService(assistant, db),
		archive:        cfg.Archive,
		notifier:       NewAnalysisNotifier(),
		allowedOrigins: cfg.AllowedOrigins,
		maxUploadBytes: maxUpload,
	}, nil
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsCfg.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/upload-document", s.handleUploadDocument)
		api.POST("/chat", s.handleChat)
		api.GET("/chat/common-questions", s.handleCommonQuestions)
		api.POST("/generate-letter", s.handleGenerateLetter)
		api.GET("/letter-templates", s.handleLetterTemplates)
		api.POST("/explain-clause", s.handleExplainClause)
		api.GET("/documents/:id", s.handleGetDocument)
		api.DELETE("/documents/:id", s.handleDeleteDocument)
		api.GET("/documents/:id/report", s.handleDocumentReport)
		api.GET("/user/documents", s.handleUserDocuments)
		api.GET("/user/letters", s.handleUserLetters)
		api.GET("/letters/:id/download", s.handleLetterDownload)
		api.GET("/dashboard", s.handleDashboard)
		api.GET("/analysis/status", s.handleAnalysisStatus)
		api.GET("/analysis/stream", s.handleAnalysisStream)
	}

	return r, nil
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "TenantRights AI Assistant API is running"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": "1.0.0"})
}

func (s *Server) handleUploadDocument(c *gin.Context) {
	user := currentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			s.renderError(c, http.StatusBadRequest, errors.New("document file is required"))
		} else {
			s.renderError(c, http.StatusBadRequest, err)
		}
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if _, ok := extract.AllowedContentTypes[contentType]; !ok {
		s.renderError(c, http.StatusBadRequest, errors.New("Invalid file type. Please upload PDF or image files."))
		return
	}

	// Size guard runs before any extraction or provider call.
	if fileHeader.Size > s.maxUploadBytes {
		s.renderError(c, http.StatusBadRequest, fmt.Errorf("File too large. Maximum size is %dMB.", s.maxUploadBytes>>20))
		return
	}

	language := lang.Normalize(c.PostForm("language"))

	path, cleanup, err := saveFormFile(fileHeader)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	if cleanup != nil {
		defer cleanup()
	}

	doc := &store.Document{
		UserID:   user.ID,
		Filename: fileHeader.Filename,
		Language: language,
		Status:   store.StatusUploading,
	}
	if err := s.db.SaveDocument(doc); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	s.notifier.Broadcast(AnalysisEvent{Type: "status", DocumentID: doc.ID, Status: store.StatusUploading})

	timer := util.StartTimer()

	s.setStatus(doc.ID, store.StatusProcessing, "extracting text")

	text, err := s.extractor.Extract(c.Request.Context(), path, contentType)
	if err != nil {
		s.failDocument(c, doc.ID, fmt.Errorf("extract text: %w", err))
		return
	}
	if !extract.ValidText(text) {
		s.failDocument(c, doc.ID, errors.New("could not extract readable lease text from the document"))
		return
	}

	if s.archive != nil {
		key := fmt.Sprintf("uploads/%d/%s%s", user.ID, uuid.NewString(), filepath.Ext(fileHeader.Filename))
		if url, err := s.archive.Put(c.Request.Context(), path, key, contentType); err != nil {
			logrus.WithError(err).WithField("document_id", doc.ID).Warn("archive upload")
		} else {
			doc.ArchiveURL = url
		}
	}

	s.setStatus(doc.ID, store.StatusProcessing, "analyzing document")

	result, err := s.analyzer.AnalyzeDocument(c.Request.Context(), text, language)
	if err != nil {
		s.failDocument(c, doc.ID, fmt.Errorf("analyze document: %w", err))
		return
	}

	doc.ExtractedText = text
	doc.Status = store.StatusComplete
	doc.StatusDetail = ""
	doc.ProcessingTimeMs = timer.ElapsedMs()
	doc.SetAnalysis(result)
	if err := s.db.UpdateDocument(doc); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	s.notifier.Broadcast(AnalysisEvent{
		Type:       "complete",
		DocumentID: doc.ID,
		Status:     store.StatusComplete,
		Score:      result.OverallScore,
	})

	logrus.WithFields(logrus.Fields{
		"document_id": doc.ID,
		"filename":    doc.Filename,
		"clauses":     len(result.UnfairClauses),
		"score":       result.OverallScore,
		"duration_ms": doc.ProcessingTimeMs,
	}).Info("document analyzed")

	c.JSON(http.StatusOK, DocumentAnalysisResponse{
		DocumentID:          doc.ID,
		Filename:            doc.Filename,
		ExtractedText:       text,
		Analysis:            result,
		UnfairClauses:       result.UnfairClauses,
		PlainEnglishSummary: result.PlainEnglishSummary,
		TenantRights:        result.TenantRights,
		Recommendations:     result.Recommendations,
		ProcessingTimeMs:    doc.ProcessingTimeMs,
	})
}

func (s *Server) setStatus(documentID uint, status, detail string) {
	if err := s.db.UpdateDocumentStatus(documentID, status, detail); err != nil {
		logrus.WithError(err).WithField("document_id", documentID).Warn("update document status")
	}
	s.notifier.Broadcast(AnalysisEvent{Type: "status", DocumentID: documentID, Status: status, Message: detail})
}

// failDocument marks the document errored and renders the failure. The row is
// kept so the client can retry or inspect the error state.
func (s *Server) failDocument(c *gin.Context, documentID uint, err error) {
	if updateErr := s.db.UpdateDocumentStatus(documentID, store.StatusError, err.Error()); updateErr != nil {
		logrus.WithError(updateErr).WithField("document_id", documentID).Warn("record document error")
	}
	s.notifier.Broadcast(AnalysisEvent{
		Type:       "error",
		DocumentID: documentID,
		Status:     store.StatusError,
		Message:    err.Error(),
	})
	s.renderError(c, http.StatusInternalServerError, fmt.Errorf("Error processing document: %w", err))
}

func (s *Server) handleChat(c *gin.Context) {
	user := currentUser(c)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}

	reply, err := s.chatSvc.Respond(c.Request.Context(), chat.Input{
		UserID:     user.ID,
		Message:    req.Message,
		DocumentID: req.DocumentID,
		History:    req.ChatHistory,
	})
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, fmt.Errorf("Error processing question: %w", err))
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (s *Server) handleCommonQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": chat.CommonQuestions()})
}

func (s *Server) handleGenerateLetter(c *gin.Context) {
	user := currentUser(c)

	var req LetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	if !letters.ValidType(req.LetterType) {
		s.renderError(c, http.StatusBadRequest, fmt.Errorf("unknown letter type %q", req.LetterType))
		return
	}

	result, err := s.letterSvc.Generate(c.Request.Context(), letters.Input{
		UserID:         user.ID,
		LetterType:     req.LetterType,
		Context:        req.Context,
		Tenant:         req.TenantInfo,
		Landlord:       req.LandlordInfo,
		SpecificIssues: req.SpecificIssues,
		Language:       req.Language,
	})
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, fmt.Errorf("Error generating letter: %w", err))
		return
	}

	c.JSON(http.StatusOK, LetterResponse{
		LetterID:   result.LetterID,
		LetterType: result.LetterType,
		Content:    result.Content,
		Language:   result.Language,
		CreatedAt:  result.CreatedAt,
	})
}

func (s *Server) handleLetterTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": letters.Catalog()})
}

func (s *Server) handleExplainClause(c *gin.Context) {
	var req ExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}

	explanation, err := s.analyzer.ExplainClause(c.Request.Context(), req.ClauseText)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, fmt.Errorf("Error explaining clause: %w", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"clause": req.ClauseText, "explanation": explanation})
}

func (s *Server) handleGetDocument(c *gin.Context) {
	user := currentUser(c)
	documentID, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}

	doc, err := s.db.GetDocument(documentID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.renderError(c, http.StatusNotFound, errors.New("Document not found"))
		} else {
			s.renderError(c, http.StatusInternalServerError, err)
		}
		return
	}
	c.JSON(http.StatusOK, DocumentFromModel(*doc))
}

func (s *Server) handleDeleteDocument(c *gin.Context) {
	user := currentUser(c)
	documentID, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}

	if err := s.db.DeleteDocument(documentID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.renderError(c, http.StatusNotFound, errors.New("Document not found"))
		} else {
			s.renderError(c, http.StatusInternalServerError, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleDocumentReport(c *gin.Context) {
	user := currentUser(c)
	documentID, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}

	doc, err := s.db.GetDocument(documentID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.renderError(c, http.StatusNotFound, errors.New("Document not found"))
		} else {
			s.renderError(c, http.StatusInternalServerError, err)
		}
		return
	}

	export, err := report.Build(doc, strings.TrimSpace(c.Query("format")))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Content)
}

func (s *Server) handleUserDocuments(c *gin.Context) {
	user := currentUser(c)
	docs, err := s.db.ListUserDocuments(user.ID)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	dtos := make([]DocumentDTO, 0, len(docs))
	for _, doc := range docs {
		dtos = append(dtos, DocumentFromModel(doc))
	}
	c.JSON(http.StatusOK, gin.H{"documents": dtos})
}

func (s *Server) handleUserLetters(c *gin.Context) {
	user := currentUser(c)
	rows, err := s.db.ListUserLetters(user.ID)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	dtos := make([]LetterDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, LetterFromModel(row))
	}
	c.JSON(http.StatusOK, gin.H{"letters": dtos})
}

func (s *Server) handleLetterDownload(c *gin.Context) {
	user := currentUser(c)
	letterID, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}

	letter, err := s.db.GetLetter(letterID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.renderError(c, http.StatusNotFound, errors.New("Letter not found"))
		} else {
			s.renderError(c, http.StatusInternalServerError, err)
		}
		return
	}

	filename := fmt.Sprintf("%s-%d.txt", letter.LetterType, letter.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(letter.Content))
}

func (s *Server) handleDashboard(c *gin.Context) {
	user := currentUser(c)

	docs, err := s.db.ListUserDocuments(user.ID)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	letterCount, err := s.db.CountUserLetters(user.ID)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	stats := UserStats{
		TotalDocumentsAnalyzed: len(docs),
		TotalLettersGenerated:  int(letterCount),
	}

	recent := make([]RecentDocument, 0, 5)
	for i, doc := range docs {
		if i >= 5 {
			break
		}
		result := doc.Analysis()
		for _, clause := range result.UnfairClauses {
			switch clause.Severity {
			case analysis.SeverityHigh:
				stats.HighRiskClausesFound++
			case analysis.SeverityMedium:
				stats.MediumRiskClausesFound++
			}
		}
		recent = append(recent, RecentDocument{
			ID:           doc.ID,
			Filename:     doc.Filename,
			OverallScore: result.OverallScore,
			RiskLevel:    riskLevel(result.OverallScore),
			CreatedAt:    doc.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, DashboardResponse{
		UserStats:       stats,
		RecentDocuments: recent,
		QuickActions: []QuickAction{
			{Action: "upload_document", Label: "Analyze New Lease", Icon: "document"},
			{Action: "generate_letter", Label: "Write Letter to Landlord", Icon: "letter"},
			{Action: "ask_question", Label: "Ask About Your Rights", Icon: "chat"},
			{Action: "view_templates", Label: "Browse Letter Templates", Icon: "templates"},
		},
	})
}

// handleAnalysisStatus lets clients poll the most recent lifecycle event
// without holding a websocket open.
func (s *Server) handleAnalysisStatus(c *gin.Context) {
	status := s.notifier.LastStatus()
	if status == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": true, "event": status})
}

func (s *Server) handleAnalysisStream(c *gin.Context) {
	upgrader := websocket.Upgrader{
		HandshakeTimeout:  5 * time.Second,
		EnableCompression: true,
		CheckOrigin: func(r *http.Request) bool {
			if len(s.allowedOrigins) == 0 {
				return true
			}
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			for _, allowed := range s.allowedOrigins {
				if strings.EqualFold(origin, allowed) {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("upgrade websocket")
		return
	}

	client := s.notifier.Register(conn)
	logrus.WithField("remote", conn.RemoteAddr().String()).Info("analysis websocket connected")
	defer s.notifier.Unregister(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithField("remote", conn.RemoteAddr().String()).Info("analysis websocket closed")
			} else {
				logrus.WithError(err).Warn("analysis websocket unexpected close")
			}
			break
		}
	}
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

func saveFormFile(header *multipart.FileHeader) (string, func(), error) {
	if header == nil {
		return "", nil, errors.New("file header is nil")
	}
	src, err := header.Open()
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", nil, err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }
	return tmp.Name(), cleanup, nil
}

func parseUintParam(value string) (uint, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, errors.New("identifier is required")
	}
	parsed, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid identifier: %w", err)
	}
	if parsed == 0 {
		return 0, errors.New("identifier must be greater than zero")
	}
	return uint(parsed), nil
}
