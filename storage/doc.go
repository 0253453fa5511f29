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


// Package storage provides the storage abstraction layer for lexorient.
//
// This package defines repository interfaces that decouple the matrix data
// source from the code that consumes matrices. A matrix imported once (from
// CSV or from an embedding service) can be reloaded by name without
// re-parsing the original file.
//
// # Constructor Return Type Pattern
//
// Constructors in implementation packages return concrete types that are
// asserted against the interface at compile time:
//
//	var _ storage.MatrixRepository = (*MatrixRepository)(nil)
//
// Callers should hold the interface.
//
// # Architecture
//
//   - MatrixRepository: save, load and inspect named matrices
//   - Manifests: per-matrix metadata (columns, row count, timestamps)
//   - Rows: one record per vocabulary term, keyed under the matrix ID
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer func() { repo.Close(); backend.Close() }()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation.
// Pass context.Background() for operations without specific timeout
// requirements.
package storage
