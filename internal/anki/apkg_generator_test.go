package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAPKGGenerator(t *testing.T) {
	gen := NewAPKGGenerator("Test Deck")

	if gen == nil {
		t.Fatal("NewAPKGGenerator returned nil")
	}

	if gen.deckName != "Test Deck" {
		t.Errorf("Expected deck name 'Test Deck', got '%s'", gen.deckName)
	}

	if len(gen.cards) != 0 {
		t.Errorf("Expected empty cards slice, got %d cards", len(gen.cards))
	}

	if len(gen.media) != 0 {
		t.Errorf("Expected no media files, got %d files", len(gen.media))
	}

	if gen.deckID != NewAPKGGenerator("Test Deck").deckID {
		t.Error("Deck id should be stable for the same name")
	}
	if gen.deckID == NewAPKGGenerator("Other Deck").deckID {
		t.Error("Different deck names should get different ids")
	}
	if gen.deckID <= 0 {
		t.Errorf("Deck id must be positive, got %d", gen.deckID)
	}
}

func TestFieldChecksum(t *testing.T) {
	a := fieldChecksum("Validation")
	if a != 0xdd74d182 {
		t.Errorf("fieldChecksum(Validation) = %x, want dd74d182", a)
	}
	if a == fieldChecksum("Misinformation") {
		t.Error("different fields should not collide")
	}
	if a < 0 || a > 0xffffffff {
		t.Errorf("checksum out of 32-bit range: %d", a)
	}
}

func TestNoteFields(t *testing.T) {
	fields := noteFields()
	want := []string{"Word", "Phonetics", "Type", "Definition", "Example", "Audio"}

	if len(fields) != len(want) {
		t.Fatalf("Expected %d fields, got %d", len(want), len(fields))
	}
	for i, name := range want {
		if fields[i].Name != name || fields[i].Ord != i {
			t.Errorf("field %d = %v, want name %q ord %d", i, fields[i], name, i)
		}
	}
}

func TestGenerateAPKG(t *testing.T) {
	tempDir := t.TempDir()

	audioFile := filepath.Join(tempDir, "lingoflash_1_abcd1234.wav")
	if err := os.WriteFile(audioFile, []byte("RIFF test audio"), 0644); err != nil {
		t.Fatal(err)
	}

	gen := NewAPKGGenerator("Class Review")
	gen.AddCard(Card{
		ID:         1,
		Word:       "Comparison culture",
		Phonetics:  "/kəmˈpær.ɪ.sən ˈkʌl.tʃər/",
		Type:       "n",
		Definition: "Measuring yourself against others.",
		Example:    "Social media fuels comparison culture.",
		AudioFile:  audioFile,
	})
	gen.AddCard(Card{
		ID:         2,
		Word:       "Validation",
		Definition: "Approval from others.",
		AudioFile:  filepath.Join(tempDir, "missing.wav"),
	})

	outputPath := filepath.Join(tempDir, "test.apkg")
	if err := gen.GenerateAPKG(outputPath); err != nil {
		t.Fatalf("GenerateAPKG() error = %v", err)
	}

	reader, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("Failed to open APKG as zip: %v", err)
	}
	defer reader.Close()

	files := map[string]*zip.File{}
	for _, f := range reader.File {
		files[f.Name] = f
	}

	for _, name := range []string{"collection.anki2", "media", "0"} {
		if files[name] == nil {
			t.Errorf("Required file '%s' not found in APKG", name)
		}
	}
	if files["1"] != nil {
		t.Error("Missing audio file should not produce a media entry")
	}

	rc, err := files["media"].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}

	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		t.Fatalf("media mapping is not JSON: %v", err)
	}
	if mapping["0"] != "lingoflash_1_abcd1234.wav" {
		t.Errorf("media mapping = %v", mapping)
	}
}

func TestCreateDatabase(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.anki2")

	gen := NewAPKGGenerator("Test Deck")
	gen.AddCard(Card{
		ID:         7,
		Word:       "Doomscrolling",
		Phonetics:  "/ˈduːmˌskroʊ.lɪŋ/",
		Type:       "n",
		Definition: "Endlessly scrolling through bad news.",
		Example:    "I stayed up until 2 a.m. doomscrolling.",
	})

	if err := gen.createDatabase(dbPath); err != nil {
		t.Fatalf("createDatabase() error = %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"col", "notes", "cards", "revlog", "graves"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	var guid, flds, sfld string
	if err := db.QueryRow("SELECT guid, flds, sfld FROM notes").Scan(&guid, &flds, &sfld); err != nil {
		t.Fatalf("Failed to read note: %v", err)
	}
	if guid != "lf_7_Doomscrolling" {
		t.Errorf("guid = %q", guid)
	}
	if sfld != "Doomscrolling" {
		t.Errorf("sfld = %q", sfld)
	}
	fields := strings.Split(flds, "\x1f")
	if len(fields) != 6 || fields[3] != "Endlessly scrolling through bad news." || fields[5] != "" {
		t.Errorf("flds = %q", fields)
	}

	var cardCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&cardCount); err != nil {
		t.Fatal(err)
	}
	if cardCount != 2 {
		t.Errorf("Expected forward and reverse card, got %d", cardCount)
	}

	var decks string
	if err := db.QueryRow("SELECT decks FROM col").Scan(&decks); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(decks, `"name":"Test Deck"`) {
		t.Errorf("deck name missing from col.decks: %s", decks)
	}
}
