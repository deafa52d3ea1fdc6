// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the risk-intelligence
// retrieval service.
//
// The service exposes two mutually exclusive protocol variants; a deployment
// picks exactly one via configuration:
//
//   - retrieve: POST {base}/retrieve with {query, k}. The backend performs
//     retrieval only and keeps no memory of prior turns.
//   - chat: POST {base}/chat with {query, history, k}. The full prior
//     conversation travels with every request, so the backend stays stateless
//     while retaining conversational grounding.
//
// Both variants answer with {response, context}. The client issues exactly
// one request per accepted submission: no retries, no cancellation of
// in-flight requests on teardown.
//
// Every failure mode (network error, non-2xx status, malformed body) is
// collapsed into ErrBackendUnavailable. Callers translate that single error
// into the fixed error turn; nothing else is externally distinguishable.
package backend
