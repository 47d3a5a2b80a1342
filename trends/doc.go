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


// Package trends analyzes how art-technology topics evolve over time.
//
// Two analyses run over corpus snapshots: temporal trends (chunks bucketed by
// publish date, with a shared linear fit over the period counts) and tag
// co-occurrence (a controlled vocabulary matched against chunk text, with
// pair counts scored against the independence expectation).
//
// Missing or malformed publish dates are a normal property of scraped web
// content, so they are silently dropped from temporal analysis rather than
// reported as errors. Only storage failures propagate.
package trends
