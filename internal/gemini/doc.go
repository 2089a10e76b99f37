// Package gemini implements the styling AI gateway on top of the Gemini
// generative model API. Text calls use JSON response schemas; image calls
// return the first inline image part of the response.
package gemini
