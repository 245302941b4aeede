// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notecache implements the client's shared in-memory note cache.
//
// The cache is owned by the client service layer and mutated only through
// its operations; UI surfaces read derived views of it and never write.
package notecache
