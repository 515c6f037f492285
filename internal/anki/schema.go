package anki

// Anki collection schema, version 11
const collectionSchema = `
CREATE TABLE col (
	id integer PRIMARY KEY, crt integer NOT NULL, mod integer NOT NULL,
	scm integer NOT NULL, ver integer NOT NULL, dty integer NOT NULL,
	usn integer NOT NULL, ls integer NOT NULL, conf text NOT NULL,
	models text NOT NULL, decks text NOT NULL, dconf text NOT NULL,
	tags text NOT NULL
);
CREATE TABLE notes (
	id integer PRIMARY KEY, guid text NOT NULL, mid integer NOT NULL,
	mod integer NOT NULL, usn integer NOT NULL, tags text NOT NULL,
	flds text NOT NULL, sfld text NOT NULL, csum integer NOT NULL,
	flags integer NOT NULL, data text NOT NULL
);
CREATE TABLE cards (
	id integer PRIMARY KEY, nid integer NOT NULL, did integer NOT NULL,
	ord integer NOT NULL, mod integer NOT NULL, usn integer NOT NULL,
	type integer NOT NULL, queue integer NOT NULL, due integer NOT NULL,
	ivl integer NOT NULL, factor integer NOT NULL, reps integer NOT NULL,
	lapses integer NOT NULL, left integer NOT NULL, odue integer NOT NULL,
	odid integer NOT NULL, flags integer NOT NULL, data text NOT NULL
);
CREATE TABLE revlog (
	id integer PRIMARY KEY, cid integer NOT NULL, usn integer NOT NULL,
	ease integer NOT NULL, ivl integer NOT NULL, lastIvl integer NOT NULL,
	factor integer NOT NULL, time integer NOT NULL, type integer NOT NULL
);
CREATE TABLE graves (
	usn integer NOT NULL, oid integer NOT NULL, type integer NOT NULL
);
CREATE INDEX ix_notes_csum ON notes (csum);
CREATE INDEX ix_notes_usn ON notes (usn);
CREATE INDEX ix_cards_usn ON cards (usn);
CREATE INDEX ix_cards_nid ON cards (nid);
CREATE INDEX ix_cards_sched ON cards (did, queue, due);
CREATE INDEX ix_revlog_usn ON revlog (usn);
CREATE INDEX ix_revlog_cid ON revlog (cid);
`

// fieldNames is the field order of the note type and of the flds column
var fieldNames = []string{"Word", "Phonetics", "Type", "Definition", "Example", "Audio"}

type deck struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Mod              int64  `json:"mod"`
	Desc             string `json:"desc"`
	Collapsed        bool   `json:"collapsed"`
	BrowserCollapsed bool   `json:"browserCollapsed"`
	Dyn              int    `json:"dyn"`
	Conf             int64  `json:"conf"`
	USN              int    `json:"usn"`
	NewToday         [2]int `json:"newToday"`
	RevToday         [2]int `json:"revToday"`
	LrnToday         [2]int `json:"lrnToday"`
	TimeToday        [2]int `json:"timeToday"`
	ExtendNew        int    `json:"extendNew"`
	ExtendRev        int    `json:"extendRev"`
}

func newDeck(id int64, name, desc string, mod int64) deck {
	return deck{ID: id, Name: name, Desc: desc, Mod: mod, Conf: 1, ExtendNew: 10, ExtendRev: 50}
}

type noteField struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Sticky bool     `json:"sticky"`
	RTL    bool     `json:"rtl"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	Media  []string `json:"media"`
}

// noteFields returns the field definitions of the note type
func noteFields() []noteField {
	fields := make([]noteField, len(fieldNames))
	for i, name := range fieldNames {
		size := 20
		if name == "Example" || name == "Type" {
			size = 16
		}
		fields[i] = noteField{Name: name, Ord: i, Font: "Arial", Size: size, Media: []string{}}
	}
	return fields
}

type template struct {
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	Qfmt  string `json:"qfmt"`
	Afmt  string `json:"afmt"`
	Did   *int64 `json:"did"`
	Bqfmt string `json:"bqfmt"`
	Bafmt string `json:"bafmt"`
}

type noteType struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Type      int           `json:"type"`
	Mod       int64         `json:"mod"`
	USN       int           `json:"usn"`
	Sortf     int           `json:"sortf"`
	Did       int64         `json:"did"`
	Req       []interface{} `json:"req"`
	Vers      []int         `json:"vers"`
	Tags      []string      `json:"tags"`
	LatexPre  string        `json:"latexPre"`
	LatexPost string        `json:"latexPost"`
	Flds      []noteField   `json:"flds"`
	Tmpls     []template    `json:"tmpls"`
	CSS       string        `json:"css"`
}

func newNoteType(id, deckID, mod int64) noteType {
	return noteType{
		ID:    id,
		Name:  "LingoFlash Vocabulary (Basic + Reverse)",
		Mod:   mod,
		USN:   -1,
		Did:   deckID,
		Vers:  []int{},
		Tags:  []string{},
		Flds:  noteFields(),
		CSS:   cardCSS,
		// template 0 needs Word, template 1 needs Definition
		Req: []interface{}{
			[]interface{}{0, "all", []int{0}},
			[]interface{}{1, "all", []int{3}},
		},
		LatexPre: "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n" +
			"\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n" +
			"\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}",
		LatexPost: "\\end{document}",
		Tmpls: []template{
			{Name: "Word to Definition", Ord: 0, Qfmt: wordFront, Afmt: wordBack},
			{Name: "Definition to Word", Ord: 1, Qfmt: definitionFront, Afmt: definitionBack},
		},
	}
}

type collectionConf struct {
	NextPos       int     `json:"nextPos"`
	EstTimes      bool    `json:"estTimes"`
	ActiveDecks   []int64 `json:"activeDecks"`
	SortType      string  `json:"sortType"`
	SortBackwards bool    `json:"sortBackwards"`
	AddToCur      bool    `json:"addToCur"`
	CurDeck       int64   `json:"curDeck"`
	NewSpread     int     `json:"newSpread"`
	DueCounts     bool    `json:"dueCounts"`
	CollapseTime  int     `json:"collapseTime"`
	TimeLim       int     `json:"timeLim"`
	SchedVer      int     `json:"schedVer"`
	CurModel      string  `json:"curModel"`
	DayLearnFirst bool    `json:"dayLearnFirst"`
}

type newCardConf struct {
	Delays        []int `json:"delays"`
	Ints          []int `json:"ints"`
	InitialFactor int   `json:"initialFactor"`
	PerDay        int   `json:"perDay"`
	Order         int   `json:"order"`
	Bury          bool  `json:"bury"`
	Separate      bool  `json:"separate"`
}

type lapseConf struct {
	Delays      []int `json:"delays"`
	Mult        int   `json:"mult"`
	MinInt      int   `json:"minInt"`
	LeechFails  int   `json:"leechFails"`
	LeechAction int   `json:"leechAction"`
}

type reviewConf struct {
	PerDay   int     `json:"perDay"`
	Ease4    float64 `json:"ease4"`
	Fuzz     float64 `json:"fuzz"`
	MaxIvl   int     `json:"maxIvl"`
	IvlFct   int     `json:"ivlFct"`
	Bury     bool    `json:"bury"`
	MinSpace int     `json:"minSpace"`
}

type deckConf struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Dyn      int         `json:"dyn"`
	New      newCardConf `json:"new"`
	Lapse    lapseConf   `json:"lapse"`
	Rev      reviewConf  `json:"rev"`
	Timer    int         `json:"timer"`
	MaxTaken int         `json:"maxTaken"`
	USN      int         `json:"usn"`
	Mod      int64       `json:"mod"`
	Autoplay bool        `json:"autoplay"`
	Replayq  bool        `json:"replayq"`
}

func defaultDeckConf(mod int64) deckConf {
	return deckConf{
		ID:   1,
		Name: "Default",
		New: newCardConf{
			Delays: []int{1, 10}, Ints: []int{1, 4, 7}, InitialFactor: 2500,
			PerDay: 20, Order: 1, Bury: true, Separate: true,
		},
		Lapse:    lapseConf{Delays: []int{10}, MinInt: 1, LeechFails: 8},
		Rev:      reviewConf{PerDay: 100, Ease4: 1.3, Fuzz: 0.05, MaxIvl: 36500, IvlFct: 1, Bury: true, MinSpace: 1},
		MaxTaken: 60,
		Mod:      mod,
		Autoplay: true,
		Replayq:  true,
	}
}

const wordFront = `<div class="front">
<div class="word">{{Word}}</div>
{{#Type}}<div class="type">{{Type}}</div>{{/Type}}
{{#Audio}}<div class="audio">{{Audio}}</div>{{/Audio}}
</div>`

const wordBack = `{{FrontSide}}
<hr id="answer">
<div class="back">
<div class="phonetics">{{Phonetics}}</div>
<div class="definition">{{Definition}}</div>
{{#Example}}<div class="example">&ldquo;{{Example}}&rdquo;</div>{{/Example}}
</div>`

const definitionFront = `<div class="front">
<div class="definition">{{Definition}}</div>
{{#Type}}<div class="type">{{Type}}</div>{{/Type}}
</div>`

const definitionBack = `{{FrontSide}}
<hr id="answer">
<div class="back">
<div class="word">{{Word}}</div>
<div class="phonetics">{{Phonetics}}</div>
{{#Audio}}<div class="audio">{{Audio}}</div>{{/Audio}}
{{#Example}}<div class="example">&ldquo;{{Example}}&rdquo;</div>{{/Example}}
</div>`

const cardCSS = `.card {
  font-family: Arial, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #1e293b;
  background-color: #f8fafc;
}
.front, .back { padding: 20px; }
.word { font-size: 34px; font-weight: bold; color: #4f46e5; margin: 20px 0; }
.type {
  display: inline-block;
  font-size: 14px;
  text-transform: uppercase;
  letter-spacing: 1px;
  color: #4338ca;
  background-color: #e0e7ff;
  border-radius: 12px;
  padding: 2px 12px;
}
.phonetics { font-family: monospace; font-size: 22px; color: #64748b; margin: 10px 0; }
.definition { font-size: 22px; margin: 15px 0; }
.example { font-size: 18px; color: #475569; font-style: italic; margin-top: 20px; }
.audio { margin: 15px 0; }
hr#answer { margin: 30px 0; border: 0; border-top: 1px solid #e2e8f0; }`
