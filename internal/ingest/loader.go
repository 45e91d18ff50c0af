package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/olajcodes/profile-agent/internal/config"
	"github.com/olajcodes/profile-agent/internal/models"
)

// Text file extensions pulled from the repository origin.
var repoExtensions = map[string]bool{
	".md":    true,
	".py":    true,
	".js":    true,
	".ts":    true,
	".html":  true,
	".ipynb": true,
}

// Loader pulls raw documents from the three configured origins. Each origin
// is independently fault-tolerant: a failing origin is logged and skipped,
// the others still load.
type Loader struct {
	cfg    config.IngestConfig
	logger *log.Logger
}

func NewLoader(cfg config.IngestConfig, logger *log.Logger) *Loader {
	return &Loader{cfg: cfg, logger: logger}
}

// LoadAll gathers documents from the repository, the résumé PDF and the
// local data folder. It never fails outright; at worst it returns zero
// documents.
func (l *Loader) LoadAll(ctx context.Context) []models.Document {
	var documents []models.Document

	repoDocs, err := l.loadRepository(ctx)
	if err != nil {
		l.logger.Printf("repository origin failed, skipping: %v", err)
	} else {
		l.logger.Printf("loaded %d documents from %s", len(repoDocs), l.cfg.RepoURL)
		documents = append(documents, repoDocs...)
	}

	resumeDocs, err := l.loadResume()
	if err != nil {
		l.logger.Printf("résumé origin failed, skipping: %v", err)
	} else {
		documents = append(documents, resumeDocs...)
	}

	localDocs, err := l.loadLocalFolder()
	if err != nil {
		l.logger.Printf("local folder origin failed, skipping: %v", err)
	} else {
		l.logger.Printf("loaded %d local documents", len(localDocs))
		documents = append(documents, localDocs...)
	}

	return documents
}

// loadRepository shallow-clones the configured repository into a transient
// working directory, reads the allow-listed text files and removes the
// clone again.
func (l *Loader) loadRepository(ctx context.Context) ([]models.Document, error) {
	if l.cfg.RepoURL == "" {
		return nil, fmt.Errorf("no repository URL configured")
	}

	if err := os.RemoveAll(l.cfg.CloneDir); err != nil {
		return nil, fmt.Errorf("clear clone dir: %w", err)
	}
	defer os.RemoveAll(l.cfg.CloneDir)

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth=1", l.cfg.RepoURL, l.cfg.CloneDir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("git clone %s: %v: %s", l.cfg.RepoURL, err, strings.TrimSpace(string(out)))
	}

	var docs []models.Document
	err := filepath.Walk(l.cfg.CloneDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !repoExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			l.logger.Printf("skipping unreadable repo file %s: %v", path, err)
			return nil
		}
		docs = append(docs, models.Document{
			Source:  "GitHub: " + filepath.Base(path),
			Content: string(data),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk clone: %w", err)
	}
	return docs, nil
}

func (l *Loader) loadResume() ([]models.Document, error) {
	if l.cfg.ResumePath == "" {
		return nil, fmt.Errorf("no résumé path configured")
	}
	text, err := ExtractTextFromPDF(l.cfg.ResumePath)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("résumé %s contained no extractable text", l.cfg.ResumePath)
	}
	return []models.Document{{
		Source:  "LinkedIn Profile",
		Content: text,
	}}, nil
}

func (l *Loader) loadLocalFolder() ([]models.Document, error) {
	entries, err := os.ReadDir(l.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("read data folder: %w", err)
	}

	var docs []models.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".md" && ext != ".txt" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(l.cfg.DataDir, name))
		if err != nil {
			l.logger.Printf("failed to load local file %s: %v", name, err)
			continue
		}
		docs = append(docs, models.Document{
			Source:  "Local File: " + name,
			Content: string(data),
		})
	}
	return docs, nil
}
