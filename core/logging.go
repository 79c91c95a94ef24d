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

package core

const (
	// LogFieldModule is the log field for the module name.
	LogFieldModule = "module"

	// LogFieldSuite is the log field key for the identifier of a signature suite.
	LogFieldSuite = "suite"
	// LogFieldAlgorithm is the log field key for the byte-level signature algorithm (e.g. EdDSA, ES256K).
	LogFieldAlgorithm = "alg"
	// LogFieldKeyID is the log field key for the reference to the signing key (creator or verificationMethod).
	// It is never used for key material.
	LogFieldKeyID = "keyID"
	// LogFieldOutcome is the log field key for the result of a verification.
	LogFieldOutcome = "outcome"

	// LogFieldContextURL is the log field key for a JSON-LD context URL loaded by the jsonld module.
	LogFieldContextURL = "contextURL"
	// LogFieldRemoteSigner is the log field key for the name of a remote signing backend (vault-transit, azure-keyvault).
	LogFieldRemoteSigner = "remoteSigner"
)
