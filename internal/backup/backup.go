package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Snapshotter produces and replaces the serialized document. Restore must
// reject data that does not decode to a valid document.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]byte, error)
	Restore(ctx context.Context, data []byte) error
}

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// Config holds backup manager configuration. A zero Interval disables the
// scheduled loop; manual backups still work.
type Config struct {
	S3            S3Config
	Passphrase    string
	Prefix        string
	Interval      time.Duration
	RetentionDays int
}

func (c Config) enabled() bool {
	return c.S3.Bucket != "" && c.S3.AccessKey != "" && c.S3.SecretKey != "" && c.Passphrase != ""
}

// ErrDisabled is returned by operations that need storage when none is configured.
var ErrDisabled = errors.New("backup not configured: S3 credentials or passphrase missing")

// State represents the backup manager state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateDisabled State = "disabled"
	StateError    State = "error"
)

// Status holds the current backup manager status.
type Status struct {
	State      State      `json:"state"`
	LastBackup *time.Time `json:"lastBackup,omitempty"`
	Error      string     `json:"error,omitempty"`
	InProgress bool       `json:"inProgress"`
}

// StatusCallback is called whenever the backup state changes.
type StatusCallback func(Status)

// Info describes one stored backup object.
type Info struct {
	Key       string    `json:"key"`
	SizeBytes int64     `json:"sizeBytes"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	keyTimeFormat = "2006-01-02T150405Z"
	keyExt        = ".json.enc"
)

// Manager manages encrypted document backups in S3-compatible storage.
type Manager struct {
	mu       sync.RWMutex
	cfg      Config
	status   Status
	callback StatusCallback

	docs   Snapshotter
	client s3Client
	logger *slog.Logger
	now    func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewManager creates a new backup manager.
func NewManager(cfg Config, docs Snapshotter, callback StatusCallback, logger *slog.Logger) *Manager {
	m := &Manager{
		cfg:      cfg,
		docs:     docs,
		callback: callback,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		status:   Status{State: StateDisabled},
	}
	if m.cfg.RetentionDays <= 0 {
		m.cfg.RetentionDays = 30
	}
	if cfg.enabled() {
		m.client = newS3Client(cfg.S3)
		m.status.State = StateIdle
	}
	return m
}

func newS3Client(cfg S3Config) *s3.Client {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	opts := s3.Options{
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Start begins the scheduled backup loop.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.status.State == StateDisabled || m.cfg.Interval <= 0 || m.cancel != nil {
		m.mu.Unlock()
		return
	}
	interval := m.cfg.Interval
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	m.logger.Info("scheduled backups started", "interval", interval)

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.scheduled(ctx)
			}
		}
	}()
}

// Stop gracefully stops the backup loop.
func (m *Manager) Stop() {
	m.mu.RLock()
	cancel := m.cancel
	done := m.done
	m.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Status returns the current backup status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) setStatus(s Status) {
	m.mu.Lock()
	if s.LastBackup == nil {
		s.LastBackup = m.status.LastBackup
	}
	m.status = s
	m.mu.Unlock()
	if m.callback != nil {
		m.callback(s)
	}
}

func (m *Manager) fail(err error) error {
	m.setStatus(Status{State: StateError, Error: err.Error()})
	return err
}

func (m *Manager) scheduled(ctx context.Context) {
	if _, err := m.RunNow(ctx); err != nil {
		m.logger.Error("scheduled backup failed", "error", err)
		return
	}
	if n, err := m.Cleanup(ctx); err != nil {
		m.logger.Error("backup cleanup failed", "error", err)
	} else if n > 0 {
		m.logger.Info("old backups removed", "count", n)
	}
}

// RunNow snapshots, encrypts and uploads the document immediately.
func (m *Manager) RunNow(ctx context.Context) (*Info, error) {
	m.mu.RLock()
	client := m.client
	cfg := m.cfg
	running := m.status.InProgress
	m.mu.RUnlock()

	if client == nil {
		return nil, ErrDisabled
	}
	if running {
		return nil, errors.New("backup already in progress")
	}

	m.setStatus(Status{State: StateRunning, InProgress: true})

	snapshot, err := m.docs.Snapshot(ctx)
	if err != nil {
		return nil, m.fail(fmt.Errorf("snapshot document: %w", err))
	}

	sealed, err := Encrypt(snapshot, cfg.Passphrase)
	if err != nil {
		return nil, m.fail(fmt.Errorf("encrypt: %w", err))
	}

	created := m.now()
	key := fmt.Sprintf("%sschompf-%s%s", cfg.Prefix, created.Format(keyTimeFormat), keyExt)

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(cfg.S3.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(sealed),
		ContentLength: aws.Int64(int64(len(sealed))),
	})
	if err != nil {
		return nil, m.fail(fmt.Errorf("upload to s3: %w", err))
	}

	m.setStatus(Status{State: StateIdle, LastBackup: &created})
	m.logger.Info("backup uploaded", "key", key, "bytes", len(sealed))

	return &Info{Key: key, SizeBytes: int64(len(sealed)), CreatedAt: created}, nil
}

// List returns the stored backups, newest first.
func (m *Manager) List(ctx context.Context) ([]Info, error) {
	m.mu.RLock()
	client := m.client
	bucket := m.cfg.S3.Bucket
	prefix := m.cfg.Prefix
	m.mu.RUnlock()

	if client == nil {
		return nil, ErrDisabled
	}

	infos := []Info{}
	var token *string
	for {
		out, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list s3 objects: %w", err)
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, keyExt) {
				continue
			}
			info := Info{Key: key, SizeBytes: aws.ToInt64(obj.Size)}
			if obj.LastModified != nil {
				info.CreatedAt = obj.LastModified.UTC()
			}
			infos = append(infos, info)
		}
		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// Restore downloads and decrypts a backup and replaces the live document.
// The current document is untouched when decryption or validation fails.
func (m *Manager) Restore(ctx context.Context, key string) error {
	m.mu.RLock()
	client := m.client
	bucket := m.cfg.S3.Bucket
	passphrase := m.cfg.Passphrase
	m.mu.RUnlock()

	if client == nil {
		return ErrDisabled
	}

	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("download from s3: %w", err)
	}
	defer result.Body.Close()

	sealed, err := io.ReadAll(result.Body)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	data, err := Decrypt(sealed, passphrase)
	if err != nil {
		return fmt.Errorf("decrypt backup: %w", err)
	}

	if err := m.docs.Restore(ctx, data); err != nil {
		return fmt.Errorf("restore document: %w", err)
	}

	m.logger.Info("backup restored", "key", key)
	return nil
}

// Cleanup deletes backups older than the retention period and reports how
// many were removed. Individual delete failures are logged and skipped.
func (m *Manager) Cleanup(ctx context.Context) (int, error) {
	m.mu.RLock()
	client := m.client
	bucket := m.cfg.S3.Bucket
	retention := m.cfg.RetentionDays
	m.mu.RUnlock()

	if client == nil {
		return 0, nil
	}

	infos, err := m.List(ctx)
	if err != nil {
		return 0, err
	}

	before := m.now().AddDate(0, 0, -retention)
	removed := 0
	for _, info := range infos {
		if !info.CreatedAt.Before(before) {
			continue
		}
		if _, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(info.Key),
		}); err != nil {
			m.logger.Warn("failed to delete backup object", "key", info.Key, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
