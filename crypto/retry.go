/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package crypto

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/nuts-foundation/go-ldsig/core"
	"github.com/nuts-foundation/go-ldsig/crypto/log"
)

var defaultRetryOptions = []retry.Option{
	retry.Attempts(3),
	retry.Delay(100 * time.Millisecond),
	retry.DelayType(retry.BackOffDelay),
	retry.LastErrorOnly(true),
}

// DefaultRetryOptions returns the options WithRetry uses when none are given.
// The result is a copy, so changing it doesn't affect the defaults.
func DefaultRetryOptions() []retry.Option {
	return append([]retry.Option{}, defaultRetryOptions...)
}

// WithRetry wraps signer so transient failures of Sign are retried according to opts (DefaultRetryOptions() if empty).
// Algorithm mismatches and context cancellation are never retried.
// Signing itself never retries; wrapping a (remote) signer is a decision of the caller.
func WithRetry(signer ByteSigner, opts ...retry.Option) ByteSigner {
	if len(opts) == 0 {
		opts = DefaultRetryOptions()
	}
	return retryingSigner{underlying: signer, opts: opts}
}

type retryingSigner struct {
	underlying ByteSigner
	opts       []retry.Option
}

func (r retryingSigner) Algorithm() jwa.SignatureAlgorithm {
	return r.underlying.Algorithm()
}

func (r retryingSigner) Sign(ctx context.Context, data []byte, algorithm jwa.SignatureAlgorithm) ([]byte, error) {
	if err := CheckAlgorithm(r.underlying.Algorithm(), algorithm); err != nil {
		return nil, err
	}
	opts := append([]retry.Option{}, r.opts...)
	opts = append(opts,
		retry.Context(ctx),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(attempt uint, err error) {
			log.Logger().
				WithError(err).
				WithField(core.LogFieldAlgorithm, algorithm).
				Debugf("Signing failed, retrying (attempt %d)", attempt+1)
		}),
	)
	return retry.DoWithData(func() ([]byte, error) {
		return r.underlying.Sign(ctx, data, algorithm)
	}, opts...)
}

func isRetryable(err error) bool {
	return !errors.Is(err, ErrAlgorithmMismatch) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
