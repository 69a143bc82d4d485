// Package apitest provides an in-memory stand-in for the food-ordering
// backend, served over httptest. It implements every route the client SDK
// calls, enforces bearer tokens on writes and can be told to fail or stall a
// route.
package apitest
