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

package signature

import (
	"errors"

	ssi "github.com/nuts-foundation/go-did"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

var signCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "ldsig",
		Subsystem: "signature",
		Name:      "sign_total",
		Help:      "Number of documents signed, by suite and outcome.",
	}, []string{"suite", "outcome"},
)

var verifyCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "ldsig",
		Subsystem: "signature",
		Name:      "verify_total",
		Help:      "Number of signatures verified, by suite and outcome (success, invalid or error).",
	}, []string{"suite", "outcome"},
)

// RegisterMetrics registers the sign and verify counters. Registering more than once is not an error.
func RegisterMetrics(registerer prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{signCounter, verifyCounter} {
		err := registerer.Register(collector)
		if err != nil && !errors.As(err, &prometheus.AlreadyRegisteredError{}) {
			return err
		}
	}
	return nil
}

func countSign(suite ssi.ProofType, outcome string) {
	signCounter.WithLabelValues(string(suite), outcome).Inc()
}

func countVerify(suite ssi.ProofType, outcome string) {
	verifyCounter.WithLabelValues(string(suite), outcome).Inc()
}
