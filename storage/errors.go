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


package storage

import "errors"

var (
	// ErrNotFound indicates that the requested matrix or row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTransactionFailed indicates that a read or write against the store failed.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrStorageClosed indicates that the storage backend is closed or missing.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidQuery indicates an unusable argument, such as a nil matrix.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrSerializationFailed indicates that a stored row or manifest could not be decoded.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrTruncatedData indicates a row or manifest shorter than it declares,
	// or a matrix with fewer rows than its manifest.
	ErrTruncatedData = errors.New("truncated data")
)
