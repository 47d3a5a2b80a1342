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


// Package search implements hybrid retrieval over the corpus.
//
// Two independent signals are fused per chunk: vector similarity from the
// embedding store (1 − cosine distance, clamped to [0,1]) and keyword overlap
// (fraction of query words present in the chunk text). Results merge by chunk
// ID with a missing signal contributing 0, and rank by the weighted sum.
//
// The keyword pass scans the whole corpus rather than an inverted index;
// at the corpus sizes this system targets the linear scan is cheaper than
// maintaining index consistency.
package search
