package store

import (
	"context"
	"fmt"

	"github.com/ederv/plandeck/internal/api"
	"github.com/ederv/plandeck/internal/model"
)

// CreateSegment persists a new time segment and appends the result
func (s *Store) CreateSegment(ctx context.Context, req api.CreateSegmentRequest) (model.TimeSegment, error) {
	segment, err := s.api.CreateSegment(ctx, req)
	if err != nil {
		return model.TimeSegment{}, fmt.Errorf("failed to create time segment: %w", err)
	}

	s.mu.Lock()
	s.segments = append(s.segments, segment)
	s.mu.Unlock()
	return segment, nil
}

// UpdateSegment applies a patch optimistically, persists, and reconciles
func (s *Store) UpdateSegment(ctx context.Context, id string, patch api.SegmentPatch) (model.TimeSegment, error) {
	s.mu.Lock()
	idx := s.segmentIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.TimeSegment{}, fmt.Errorf("time segment %s: %w", id, ErrNotFound)
	}
	optimistic := s.segments[idx]
	patch.Apply(&optimistic)
	optimistic.UpdatedAt = s.now()
	s.segments[idx] = optimistic
	s.mu.Unlock()

	segment, err := s.api.UpdateSegment(ctx, id, patch)
	if err != nil {
		s.resyncSegments(ctx)
		return model.TimeSegment{}, fmt.Errorf("failed to update time segment: %w", err)
	}

	s.mu.Lock()
	if idx := s.segmentIndexLocked(id); idx >= 0 {
		s.segments[idx] = segment
	}
	s.mu.Unlock()
	return segment, nil
}

// DeleteSegment removes the segment optimistically and persists.
// Resync on failure, matching the task delete policy.
func (s *Store) DeleteSegment(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.segmentIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("time segment %s: %w", id, ErrNotFound)
	}
	s.segments = append(s.segments[:idx], s.segments[idx+1:]...)
	s.mu.Unlock()

	if err := s.api.DeleteSegment(ctx, id); err != nil {
		s.resyncSegments(ctx)
		return fmt.Errorf("failed to delete time segment: %w", err)
	}
	return nil
}

// DeleteSegments removes several segments optimistically and persists
// them in one bulk call.
func (s *Store) DeleteSegments(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	s.mu.Lock()
	kept := s.segments[:0:0]
	for _, seg := range s.segments {
		if !drop[seg.ID] {
			kept = append(kept, seg)
		}
	}
	s.segments = kept
	s.mu.Unlock()

	if err := s.api.DeleteSegments(ctx, ids); err != nil {
		s.resyncSegments(ctx)
		return fmt.Errorf("failed to delete time segments: %w", err)
	}
	return nil
}

func (s *Store) segmentIndexLocked(id string) int {
	for i := range s.segments {
		if s.segments[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) resyncSegments(ctx context.Context) {
	segments, err := s.api.Segments(ctx, "")
	if err != nil {
		return
	}
	s.mu.Lock()
	s.segments = segments
	s.mu.Unlock()
}
