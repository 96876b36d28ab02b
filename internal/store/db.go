package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the GORM DB handle and exposes repository helpers.
type Database struct {
	gorm *gorm.DB
	mu   sync.Mutex
}

// Open initializes the SQLite-backed database at the provided path.
func Open(path string, silent bool) (*Database, error) {
	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&Document{}, &Letter{}, &ChatSession{}, &ChatMessage{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		logrus.WithError(err).Warn("enable WAL mode")
	}
	if err := db.Exec("PRAGMA synchronous=NORMAL").Error; err != nil {
		logrus.WithError(err).Warn("set synchronous pragma")
	}
	if err := applyIndexes(db); err != nil {
		return nil, fmt.Errorf("apply indexes: %w", err)
	}
	return &Database{gorm: db}, nil
}

// GORM exposes the raw gorm.DB handle.
func (d *Database) GORM() *gorm.DB {
	return d.gorm
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func applyIndexes(db *gorm.DB) error {
	stmts := []string{
		"CREATE INDEX IF NOT EXISTS idx_documents_user_created ON documents(user_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status)",
		"CREATE INDEX IF NOT EXISTS idx_letters_user_created ON letters(user_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_chat_messages_session_created ON chat_messages(session_id, created_at)",
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// SaveDocument creates a new document row.
func (d *Database) SaveDocument(doc *Document) error {
	if doc == nil {
		return errors.New("document is nil")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Create(doc).Error
}

// UpdateDocument writes back all mutable columns of an existing document.
func (d *Database) UpdateDocument(doc *Document) error {
	if doc == nil || doc.ID == 0 {
		return errors.New("document has no id")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Save(doc).Error
}

// UpdateDocumentStatus transitions a document through the analysis lifecycle.
func (d *Database) UpdateDocumentStatus(id uint, status, detail string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Model(&Document{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "status_detail": detail}).Error
}

// GetDocument retrieves a document by ID scoped to the owning user.
func (d *Database) GetDocument(id, userID uint) (*Document, error) {
	var doc Document
	if err := d.gorm.Where("id = ? AND user_id = ?", id, userID).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListUserDocuments returns the user's documents, newest first.
func (d *Database) ListUserDocuments(userID uint) ([]Document, error) {
	var docs []Document
	if err := d.gorm.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteDocument removes a document owned by the user. Returns
// gorm.ErrRecordNotFound when the row does not exist or belongs to another
// user.
func (d *Database) DeleteDocument(id, userID uint) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	res := d.gorm.Where("id = ? AND user_id = ?", id, userID).Delete(&Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SaveLetter creates a letter row.
func (d *Database) SaveLetter(letter *Letter) error {
	if letter == nil {
		return errors.New("letter is nil")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Create(letter).Error
}

// GetLetter retrieves a letter by ID scoped to the owning user.
func (d *Database) GetLetter(id, userID uint) (*Letter, error) {
	var letter Letter
	if err := d.gorm.Where("id = ? AND user_id = ?", id, userID).First(&letter).Error; err != nil {
		return nil, err
	}
	return &letter, nil
}

// ListUserLetters returns the user's letters, newest first.
func (d *Database) ListUserLetters(userID uint) ([]Letter, error) {
	var letters []Letter
	if err := d.gorm.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&letters).Error; err != nil {
		return nil, err
	}
	return letters, nil
}

// CreateChatSession opens a new chat session for the user.
func (d *Database) CreateChatSession(userID uint, documentID *uint) (*ChatSession, error) {
	session := &ChatSession{UserID: userID, DocumentID: documentID, CreatedAt: time.Now()}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.gorm.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// AppendChatMessages stores a batch of messages on a session.
func (d *Database) AppendChatMessages(sessionID uint, messages []ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}
	for i := range messages {
		messages[i].SessionID = sessionID
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Create(&messages).Error
}

// GetChatSession retrieves a session by ID scoped to the owning user.
func (d *Database) GetChatSession(id, userID uint) (*ChatSession, error) {
	var session ChatSession
	if err := d.gorm.Where("id = ? AND user_id = ?", id, userID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessionMessages returns the messages of a session in chronological
// order.
func (d *Database) ListSessionMessages(sessionID uint) ([]ChatMessage, error) {
	var messages []ChatMessage
	if err := d.gorm.Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// CountUserLetters returns the number of letters generated by the user.
func (d *Database) CountUserLetters(userID uint) (int64, error) {
	var count int64
	if err := d.gorm.Model(&Letter{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
