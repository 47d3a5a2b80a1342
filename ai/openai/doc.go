// Package openai implements the ai interfaces against OpenAI-compatible APIs.
//
// Works with any service exposing the OpenAI embeddings endpoint, including
// local hosts like Ollama, LocalAI, and vLLM. Authentication defaults to a
// placeholder token suitable for local services.
package openai
