// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package publish implements the state machine governing how article status
// changes affect the published_at timestamp. The rules are pure functions so
// the stores stay free of timestamp policy.
package publish

import (
	"time"

	"inkwell/internal/models"
)

// Policy configures transition behavior that downstream consumers may want
// either way.
type Policy struct {
	// ClearOnUnpublish clears published_at when an article transitions
	// published→draft. The default (false) keeps the historical first-publish
	// timestamp so republishing metadata survives an unpublish.
	ClearOnUnpublish bool
}

// DefaultPolicy retains published_at across unpublish.
var DefaultPolicy = Policy{ClearOnUnpublish: false}

// AtCreate returns the published_at value for a newly created article.
// An explicitly supplied timestamp always wins, even for drafts (imports and
// backdated posts). A published article with no explicit timestamp goes live
// at the creation instant. Drafts otherwise stay unpublished.
func AtCreate(status models.ArticleStatus, explicit *time.Time, now time.Time) *time.Time {
	if explicit != nil {
		return explicit
	}
	if status == models.StatusPublished {
		return &now
	}
	return nil
}

// AtUpdate returns the published_at value after a status transition on an
// existing article.
//
//	draft     → published  : now, overwriting any prior value ("going live now")
//	published → published  : untouched
//	published → draft      : untouched unless the policy clears it
//	draft     → draft      : untouched
func AtUpdate(prev, next models.ArticleStatus, current *time.Time, now time.Time, p Policy) *time.Time {
	switch {
	case prev == models.StatusDraft && next == models.StatusPublished:
		return &now
	case prev == models.StatusPublished && next == models.StatusDraft:
		if p.ClearOnUnpublish {
			return nil
		}
		return current
	default:
		return current
	}
}
