// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"
	"sync"

	"github.com/pion/webrtc/v4"
)

// Compile-time interface check.
var _ Signaler = (*MemorySignaler)(nil)

// AnswerFunc produces an answer for an offer.
type AnswerFunc func(ctx context.Context, offer webrtc.SessionDescription) (webrtc.SessionDescription, error)

// MemorySignaler is an in-process Signaler for tests. Offers are handed
// straight to an AnswerFunc, bypassing HTTP and encryption entirely,
// and recorded for inspection.
type MemorySignaler struct {
	answer AnswerFunc

	mu     sync.Mutex
	offers []webrtc.SessionDescription
}

// NewMemorySignaler creates a signaler that answers with answer.
func NewMemorySignaler(answer AnswerFunc) *MemorySignaler {
	return &MemorySignaler{answer: answer}
}

func (s *MemorySignaler) Exchange(ctx context.Context, offer webrtc.SessionDescription) (webrtc.SessionDescription, error) {
	s.mu.Lock()
	s.offers = append(s.offers, offer)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return webrtc.SessionDescription{}, err
	}
	return s.answer(ctx, offer)
}

// Offers returns every offer received so far.
func (s *MemorySignaler) Offers() []webrtc.SessionDescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]webrtc.SessionDescription(nil), s.offers...)
}
