// Copyright 2025 Technelab
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


// Package storage provides the corpus store abstraction for techne.
//
// This package defines the repository interface that decouples the analytics
// engine from any particular storage backend. The engine treats the store as
// an abstract queryable snapshot: it only performs idempotent reads
// (GetAllChunks, FindSimilar), while the ingestion pipeline uses the write
// operations.
//
// Public constructors in backend packages return interface types:
//
//	repo, err := badger.NewChunkRepository(backend)  // returns storage.ChunkRepository
//
// This keeps consumers decoupled from BadgerDB specifics and makes in-memory
// test backends interchangeable with persistent ones.
package storage
