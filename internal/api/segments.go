package api

import (
	"context"
	"net/url"
	"time"

	"github.com/ederv/plandeck/internal/model"
)

// SegmentPatch is a partial time-segment update
type SegmentPatch struct {
	TaskID    *string       `json:"task_id,omitempty"`
	StartTime *time.Time    `json:"start_time,omitempty"`
	EndTime   *time.Time    `json:"end_time,omitempty"`
	Date      *string       `json:"date,omitempty"`
	Status    *model.Status `json:"status,omitempty"`
}

// Apply merges the patch into a segment. The denormalized Date follows
// StartTime unless the patch sets it explicitly.
func (p SegmentPatch) Apply(s *model.TimeSegment) {
	if p.TaskID != nil {
		s.TaskID = *p.TaskID
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
		if p.Date == nil {
			s.Date = s.StartTime.Format("2006-01-02")
		}
	}
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
	if p.Date != nil {
		s.Date = *p.Date
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
}

// CreateSegmentRequest is the payload for creating a time segment
type CreateSegmentRequest struct {
	TaskID    string              `json:"task_id"`
	StartTime time.Time           `json:"start_time"`
	EndTime   time.Time           `json:"end_time"`
	Date      string              `json:"date,omitempty"`
	Status    model.Status        `json:"status,omitempty"`
	Source    model.SegmentSource `json:"source,omitempty"`
}

// IDPatch pairs a segment id with its patch for bulk updates
type IDPatch struct {
	ID    string       `json:"id"`
	Patch SegmentPatch `json:"patch"`
}

// Segments returns time segments, optionally restricted to one day
func (c *Client) Segments(ctx context.Context, date string) ([]model.TimeSegment, error) {
	var q url.Values
	if date != "" {
		q = url.Values{"date": {date}}
	}
	var segments []model.TimeSegment
	if err := c.get(ctx, "/time-segments", q, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// SegmentsByDate returns the segments for a single day
func (c *Client) SegmentsByDate(ctx context.Context, date string) ([]model.TimeSegment, error) {
	var segments []model.TimeSegment
	if err := c.get(ctx, "/time-segments/by-date/"+url.PathEscape(date), nil, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// CreateSegment creates a segment and returns the server's representation
func (c *Client) CreateSegment(ctx context.Context, req CreateSegmentRequest) (model.TimeSegment, error) {
	var segment model.TimeSegment
	if err := c.post(ctx, "/time-segments", req, &segment); err != nil {
		return model.TimeSegment{}, err
	}
	return segment, nil
}

// UpdateSegment applies a patch and returns the authoritative result
func (c *Client) UpdateSegment(ctx context.Context, id string, patch SegmentPatch) (model.TimeSegment, error) {
	var segment model.TimeSegment
	if err := c.put(ctx, "/time-segments/"+url.PathEscape(id), patch, &segment); err != nil {
		return model.TimeSegment{}, err
	}
	return segment, nil
}

// UpdateSegments applies several patches in one request
func (c *Client) UpdateSegments(ctx context.Context, patches []IDPatch) ([]model.TimeSegment, error) {
	var segments []model.TimeSegment
	if err := c.put(ctx, "/time-segments", patches, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// DeleteSegment deletes one segment
func (c *Client) DeleteSegment(ctx context.Context, id string) error {
	return c.delete(ctx, "/time-segments/"+url.PathEscape(id), nil)
}

// DeleteSegments deletes several segments in one request
func (c *Client) DeleteSegments(ctx context.Context, ids []string) error {
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}
	return c.delete(ctx, "/time-segments", body)
}
