// Package session provides the persistence adapter that carries the
// preset registry and the in-progress layout config across runs.
//
// The whole session is serialized as one JSON blob under a single
// well-known preference-store key at session end and read back at session
// start. A missing key means "no saved state": the session initializes
// with an all-empty registry, never an error.
//
// Image references inside a restored session are stored as resolvable
// path references; [Session.Relink] re-resolves them to live raster
// handles after load. A reference that fails to resolve leaves the config
// "configured but incomplete" (nil image); compiling such a config fails
// its precondition rather than the relink step failing the whole load.
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/layout"
	"github.com/matzehuels/pixelforge/pkg/preset"
	"github.com/matzehuels/pixelforge/pkg/raster"
	"github.com/matzehuels/pixelforge/pkg/store"
)

// Key is the well-known preference-store key the whole session lives under.
const Key = "pixelforge:session"

// Loader resolves an image path reference to a live raster handle.
// raster.Load is the production implementation.
type Loader func(path string) (raster.Source, error)

// Session owns one registry and one in-progress layout config. It is the
// explicit session object passed to operations; there is no implicit
// singleton state anywhere in the module.
type Session struct {
	ID       string           `json:"id"`
	Current  *layout.Config   `json:"current,omitempty"`
	Registry *preset.Registry `json:"registry"`
	SavedAt  time.Time        `json:"saved_at,omitempty"`
}

// New creates a fresh session with an all-empty registry.
func New() *Session {
	return &Session{
		ID:       uuid.NewString(),
		Registry: preset.NewRegistry(),
	}
}

// Load reads the session blob from the store. A missing key yields a
// fresh session. The returned session's image references are unresolved;
// call Relink before compiling.
func Load(ctx context.Context, s store.Store) (*Session, error) {
	data, found, err := s.Get(ctx, Key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load session")
	}
	if !found {
		return New(), nil
	}

	sess := &Session{Registry: preset.NewRegistry()}
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "parse session")
	}
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.Registry == nil {
		sess.Registry = preset.NewRegistry()
	}
	return sess, nil
}

// Save writes the session blob to the store under Key.
func (s *Session) Save(ctx context.Context, st store.Store) error {
	s.SavedAt = time.Now().UTC()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal session")
	}
	if err := st.Set(ctx, Key, data); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "persist session")
	}
	return nil
}

// Relink re-resolves image path references to live raster handles for the
// current config and every occupied registry slot. It returns the paths
// that failed to resolve; those configs keep a nil image and must be
// treated as configured but incomplete (compiling them fails the image
// precondition, the relink itself never fails the load).
func (s *Session) Relink(load Loader) []string {
	var failed []string

	if cfg := s.Current; cfg != nil && cfg.ImagePath != "" && cfg.Image == nil {
		img, err := load(cfg.ImagePath)
		if err != nil {
			failed = append(failed, cfg.ImagePath)
		} else {
			cfg.Image = img
		}
	}

	for i := 0; i < preset.Capacity; i++ {
		cfg, ok := s.Registry.Load(i)
		if !ok || cfg.ImagePath == "" || cfg.Image != nil {
			continue
		}
		img, err := load(cfg.ImagePath)
		if err != nil {
			failed = append(failed, cfg.ImagePath)
			continue
		}
		s.Registry.RelinkImage(i, img)
	}

	return failed
}
