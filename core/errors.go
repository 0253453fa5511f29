// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidSeeds indicates a seed set failed validation.
	ErrInvalidSeeds = errors.New("invalid seed set")

	// ErrEmptyTerm indicates a vocabulary term is the empty string.
	ErrEmptyTerm = errors.New("term cannot be empty")

	// ErrNoSeeds indicates a seed set has no terms.
	ErrNoSeeds = errors.New("seed set cannot be empty")

	// ErrInvalidManifest indicates a MatrixManifest failed validation.
	ErrInvalidManifest = errors.New("invalid matrix manifest")

	// ErrEmptyMatrixName indicates the matrix Name field is empty.
	ErrEmptyMatrixName = errors.New("matrix name cannot be empty")

	// ErrNoColumns indicates a matrix has no context columns.
	ErrNoColumns = errors.New("matrix must have at least one column")
)
