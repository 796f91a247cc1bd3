package drawing

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/playmate/backend/internal/model/session"
)

var (
	ErrDrawingUnavailable = errors.New("drawing canvas unavailable")
	ErrInvalidDrawing     = errors.New("invalid drawing")
	ErrDrawingTooLarge    = errors.New("drawing too large")
)

// UnavailableMessage is shown on the draw page when the canvas is off.
const UnavailableMessage = "Drawing is not available right now. Ask a grown-up to turn on the drawing canvas."

// SavedMessage confirms a saved drawing.
const SavedMessage = "Drawing saved!"

// DefaultMaxBytes caps a decoded PNG.
const DefaultMaxBytes = 2 << 20

const dataURLPrefix = "data:image/png;base64,"

// Config toggles the canvas feature.
type Config struct {
	Enabled  bool
	MaxBytes int
}

// Service validates and stores canvas snapshots.
type Service struct {
	enabled  bool
	maxBytes int
}

// NewService builds the drawing service.
func NewService(cfg Config) *Service {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	return &Service{enabled: cfg.Enabled, maxBytes: cfg.MaxBytes}
}

// Enabled reports whether drawings can be saved.
func (s *Service) Enabled() bool {
	return s != nil && s.enabled
}

// Decode checks that raw is a PNG, either as a data URL or bare base64, and
// returns it normalized to a data URL.
func (s *Service) Decode(raw string) (session.Drawing, error) {
	payload := strings.TrimSpace(raw)
	payload = strings.TrimPrefix(payload, dataURLPrefix)
	if payload == "" {
		return session.Drawing{}, fmt.Errorf("%w: empty image", ErrInvalidDrawing)
	}
	if strings.HasPrefix(payload, "data:") {
		return session.Drawing{}, fmt.Errorf("%w: only image/png data URLs are accepted", ErrInvalidDrawing)
	}

	if base64.StdEncoding.DecodedLen(len(payload)) > s.maxBytes+3 {
		return session.Drawing{}, fmt.Errorf("%w: limit is %d bytes", ErrDrawingTooLarge, s.maxBytes)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return session.Drawing{}, fmt.Errorf("%w: %v", ErrInvalidDrawing, err)
	}
	if len(data) > s.maxBytes {
		return session.Drawing{}, fmt.Errorf("%w: limit is %d bytes", ErrDrawingTooLarge, s.maxBytes)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return session.Drawing{}, fmt.Errorf("%w: %v", ErrInvalidDrawing, err)
	}

	return session.Drawing{
		DataURL: dataURLPrefix + payload,
		Width:   cfg.Width,
		Height:  cfg.Height,
	}, nil
}

// Save validates raw and appends it to the session's drawings.
func (s *Service) Save(state *session.State, raw string, now time.Time) (session.Drawing, error) {
	if !s.Enabled() {
		return session.Drawing{}, ErrDrawingUnavailable
	}

	d, err := s.Decode(raw)
	if err != nil {
		return session.Drawing{}, err
	}
	d.ID = uuid.NewString()
	d.CreatedAt = now
	state.AddDrawing(d)
	return d, nil
}
