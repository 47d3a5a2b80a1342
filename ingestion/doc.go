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


// Package ingestion turns fetched web documents into stored, embedded chunks.
//
// The pipeline cleans page text of scraping artifacts, splits it into
// overlapping chunks with a sentence-boundary preference, normalizes
// metadata (domain, title, publish date), stores the chunks, and schedules
// embedding generation on a worker pool. Storage succeeds independently of
// embedding: a chunk without a vector is still reachable through keyword
// search and trend analysis.
package ingestion
