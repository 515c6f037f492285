// Package phonetic fills in missing IPA transcriptions for deck cards
// using an OpenAI chat model.
package phonetic
