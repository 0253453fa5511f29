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


package bootstrap

import "errors"

var (
	// ErrVocabularyRequired is returned when a vocabulary is not provided.
	ErrVocabularyRequired = errors.New("vocabulary required")

	// ErrNeighborLookupRequired is returned when a neighbor lookup is not provided.
	ErrNeighborLookupRequired = errors.New("neighbor lookup required")

	// ErrInvalidParams is returned when expansion parameters fail validation.
	ErrInvalidParams = errors.New("invalid expansion parameters")

	// ErrDistFactor is returned when the distance factor fails or yields an
	// unusable weight. The run is aborted.
	ErrDistFactor = errors.New("distance factor failed")

	// ErrNeighborLookup is returned when a neighbor query fails.
	ErrNeighborLookup = errors.New("neighbor lookup failed")

	// ErrUnknownSchedule is returned by ParseDistFactor for an unrecognised schedule.
	ErrUnknownSchedule = errors.New("unknown distance factor schedule")

	// ErrStepOutOfRange is returned by a Table schedule asked for a step it lacks.
	ErrStepOutOfRange = errors.New("step out of range")
)
