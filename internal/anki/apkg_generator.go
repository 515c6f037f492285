package anki

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// noteTypeID stays fixed so repeated imports update one note type
const noteTypeID int64 = 1718035200000

// APKGGenerator creates Anki package files (.apkg)
type APKGGenerator struct {
	deckName string
	deckID   int64
	cards    []Card

	// media lists audio basenames in package order; mediaPaths maps each
	// basename to its file on disk
	media      []string
	mediaPaths map[string]string

	now func() time.Time
}

// NewAPKGGenerator creates a new APKG generator
func NewAPKGGenerator(deckName string) *APKGGenerator {
	return &APKGGenerator{
		deckName:   deckName,
		deckID:     deckIDFor(deckName),
		cards:      make([]Card, 0),
		mediaPaths: make(map[string]string),
		now:        time.Now,
	}
}

// deckIDFor derives a stable deck id from the name
func deckIDFor(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64()>>1) | 1
}

// AddCard adds a card to the generator
func (g *APKGGenerator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GenerateAPKG writes the package to outputPath
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	g.collectMedia()

	// sqlite needs a real file, so the collection is built in a temp dir
	tempDir, err := os.MkdirTemp("", "lingoflash_apkg_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := g.writePackage(dbPath, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}
	return nil
}

// collectMedia numbers every existing audio file once, in card order
func (g *APKGGenerator) collectMedia() {
	for _, card := range g.cards {
		if card.AudioFile == "" {
			continue
		}
		if _, err := os.Stat(card.AudioFile); err != nil {
			continue
		}
		name := filepath.Base(card.AudioFile)
		if _, seen := g.mediaPaths[name]; seen {
			continue
		}
		g.media = append(g.media, name)
		g.mediaPaths[name] = card.AudioFile
	}
}

// createDatabase creates the Anki SQLite collection at dbPath
func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(collectionSchema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := g.insertCollection(tx); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := g.insertNotes(tx); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}

	return tx.Commit()
}

// insertCollection writes the single col row holding all JSON metadata
func (g *APKGGenerator) insertCollection(tx *sql.Tx) error {
	now := g.now().Unix()

	decks := map[string]deck{
		"1": newDeck(1, "Default", "", now),
		strconv.FormatInt(g.deckID, 10): newDeck(g.deckID, g.deckName, "Vocabulary cards exported by LingoFlash", now),
	}
	models := map[string]noteType{
		strconv.FormatInt(noteTypeID, 10): newNoteType(noteTypeID, g.deckID, now),
	}
	conf := collectionConf{
		NextPos:      1,
		EstTimes:     true,
		ActiveDecks:  []int64{1},
		SortType:     "noteFld",
		AddToCur:     true,
		CurDeck:      1,
		DueCounts:    true,
		CollapseTime: 1200,
		SchedVer:     1,
		CurModel:     strconv.FormatInt(noteTypeID, 10),
	}
	dconf := map[string]deckConf{"1": defaultDeckConf(now)}

	var blobs [4][]byte
	for i, v := range []interface{}{conf, models, decks, dconf} {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		blobs[i] = data
	}

	_, err := tx.Exec(`INSERT INTO col VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		now, now*1000, now*1000,
		string(blobs[0]), string(blobs[1]), string(blobs[2]), string(blobs[3]))
	return err
}

// insertNotes writes one note and two cards (word first, definition first)
// per vocabulary card
func (g *APKGGenerator) insertNotes(tx *sql.Tx) error {
	noteStmt, err := tx.Prepare(`INSERT INTO notes VALUES (?, ?, ?, ?, -1, '', ?, ?, ?, 0, '')`)
	if err != nil {
		return err
	}
	defer noteStmt.Close()

	cardStmt, err := tx.Prepare(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`)
	if err != nil {
		return err
	}
	defer cardStmt.Close()

	now := g.now()
	for i, card := range g.cards {
		noteID := now.UnixMilli() + int64(i*3)

		if _, err := noteStmt.Exec(noteID, noteGUID(card), noteTypeID, now.Unix(),
			g.joinFields(card), card.Word, fieldChecksum(card.Word)); err != nil {
			return fmt.Errorf("failed to insert note %q: %w", card.Word, err)
		}

		for ord := 0; ord < 2; ord++ {
			cardID := noteID + int64(ord) + 1
			// new cards are due in insertion order
			due := i*2 + ord + 1
			if _, err := cardStmt.Exec(cardID, noteID, g.deckID, ord, now.Unix(), due); err != nil {
				return fmt.Errorf("failed to insert card %q: %w", card.Word, err)
			}
		}
	}

	return nil
}

// joinFields builds the flds column, fields separated by 0x1f
func (g *APKGGenerator) joinFields(card Card) string {
	audio := ""
	if card.AudioFile != "" {
		if name := filepath.Base(card.AudioFile); g.mediaPaths[name] != "" {
			audio = fmt.Sprintf("[sound:%s]", name)
		}
	}

	return strings.Join([]string{
		card.Word,
		card.Phonetics,
		card.Type,
		card.Definition,
		card.Example,
		audio,
	}, "\x1f")
}

// noteGUID is stable across exports so Anki updates instead of duplicating
func noteGUID(card Card) string {
	return fmt.Sprintf("lf_%d_%s", card.ID, card.Word)
}

// fieldChecksum is the first 8 hex digits of the SHA-1 of the sort field
func fieldChecksum(field string) int64 {
	sum := sha1.Sum([]byte(field))
	return int64(binary.BigEndian.Uint32(sum[:4]))
}

// writePackage zips the collection, the numbered media files and the media
// index into outputPath
func (g *APKGGenerator) writePackage(dbPath, outputPath string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	archive := zip.NewWriter(out)

	if err := addFile(archive, "collection.anki2", dbPath); err != nil {
		return err
	}

	index := make(map[string]string, len(g.media))
	for i, name := range g.media {
		entry := strconv.Itoa(i)
		if err := addFile(archive, entry, g.mediaPaths[name]); err != nil {
			return fmt.Errorf("failed to add audio file %s: %w", name, err)
		}
		index[entry] = name
	}

	w, err := archive.Create("media")
	if err != nil {
		return err
	}
	if err := json.NewEncoder(w).Encode(index); err != nil {
		return err
	}

	if err := archive.Close(); err != nil {
		return err
	}
	return out.Close()
}

func addFile(archive *zip.Writer, name, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := archive.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
