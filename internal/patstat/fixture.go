// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patstat

import (
	"database/sql"
	"fmt"
)

// BuildFixture creates a small PATSTAT-shaped SQLite database at path,
// seeded with a rare-earth-elements landscape: seven applications that
// the default definition finds (plus one lithium-battery decoy it must
// not), publications, forward and backward citations, applicants, and
// the country lookup. The selftest harness and the package tests run
// the real query layer against it.
//
// The fixture is sqlite-only; its DML uses the native ? placeholder.
func BuildFixture(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening fixture database: %w", err)
	}
	defer db.Close()

	if err := fixtureSchema(db); err != nil {
		return err
	}
	if err := fixtureSeed(db); err != nil {
		return err
	}
	return nil
}

func fixtureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tls201_appln (
			appln_id INTEGER PRIMARY KEY,
			appln_auth TEXT NOT NULL,
			appln_nr TEXT,
			appln_kind TEXT,
			appln_filing_date TEXT,
			appln_filing_year INTEGER NOT NULL,
			docdb_family_id INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tls202_appln_title (
			appln_id INTEGER PRIMARY KEY,
			appln_title_lg TEXT,
			appln_title TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tls203_appln_abstr (
			appln_id INTEGER PRIMARY KEY,
			appln_abstract_lg TEXT,
			appln_abstract TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tls224_appln_cpc (
			appln_id INTEGER NOT NULL,
			cpc_class_symbol TEXT NOT NULL,
			PRIMARY KEY (appln_id, cpc_class_symbol)
		)`,
		`CREATE TABLE IF NOT EXISTS tls211_pat_publn (
			pat_publn_id INTEGER PRIMARY KEY,
			publn_auth TEXT NOT NULL,
			publn_nr TEXT,
			publn_kind TEXT,
			appln_id INTEGER NOT NULL,
			publn_date TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS tls212_citation (
			pat_publn_id INTEGER NOT NULL,
			citn_id INTEGER NOT NULL,
			citn_origin TEXT,
			cited_pat_publn_id INTEGER NOT NULL,
			cited_appln_id INTEGER NOT NULL,
			PRIMARY KEY (pat_publn_id, citn_id)
		)`,
		`CREATE TABLE IF NOT EXISTS tls207_pers_appln (
			person_id INTEGER NOT NULL,
			appln_id INTEGER NOT NULL,
			applt_seq_nr INTEGER NOT NULL,
			invt_seq_nr INTEGER NOT NULL,
			PRIMARY KEY (person_id, appln_id, applt_seq_nr, invt_seq_nr)
		)`,
		`CREATE TABLE IF NOT EXISTS tls206_person (
			person_id INTEGER PRIMARY KEY,
			person_name TEXT NOT NULL,
			person_ctry_code TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS tls801_country (
			ctry_code TEXT PRIMARY KEY,
			st3_name TEXT NOT NULL,
			continent TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing fixture schema statement: %w", err)
		}
	}
	return nil
}

func fixtureSeed(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning fixture transaction: %w", err)
	}
	defer tx.Rollback()

	applications := []struct {
		id         int64
		auth       string
		nr         string
		kind       string
		filingDate string
		filingYear int
		familyID   int64
	}{
		{3001, "EP", "18180001", "A", "2018-03-12", 2018, 70001},
		{3002, "US", "201916200002", "A", "2019-07-29", 2019, 70001},
		{3003, "CN", "202010300003", "A", "2020-02-18", 2020, 70002},
		{3004, "JP", "2020100004", "A", "2020-10-06", 2020, 70003},
		{3005, "DE", "102021000005", "A", "2021-05-21", 2021, 70004},
		{3006, "FR", "2206006", "A", "2022-06-14", 2022, 70005},
		{3007, "US", "202318100007", "A", "2023-01-11", 2023, 70006},
		{3008, "KR", "1020170000008", "A", "2017-09-01", 2017, 70007},
	}
	for _, a := range applications {
		if _, err := tx.Exec(
			`INSERT INTO tls201_appln (appln_id, appln_auth, appln_nr, appln_kind, appln_filing_date, appln_filing_year, docdb_family_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.id, a.auth, a.nr, a.kind, a.filingDate, a.filingYear, a.familyID,
		); err != nil {
			return fmt.Errorf("seeding tls201_appln: %w", err)
		}
	}

	titles := []struct {
		id    int64
		lg    string
		title string
	}{
		{3001, "en", "Recovery of neodymium from sintered magnet scrap"},
		{3002, "en", "Hydrometallurgical separation of rare earth elements from leach liquor"},
		{3003, "en", "Molten salt electrolysis apparatus for dysprosium alloy production"},
		{3004, "en", "Phosphor composition comprising europium-doped yttrium oxide"},
		{3005, "de", "Permanentmagnet mit verbesserter Koerzitivfeldstaerke"},
		{3006, "en", "Process for recycling fluorescent lamp waste"},
		{3007, "en", "Wind turbine generator with reduced heavy rare earth content"},
		{3008, "en", "Cathode active material for lithium secondary battery"},
	}
	for _, t := range titles {
		if _, err := tx.Exec(
			`INSERT INTO tls202_appln_title (appln_id, appln_title_lg, appln_title) VALUES (?, ?, ?)`,
			t.id, t.lg, t.title,
		); err != nil {
			return fmt.Errorf("seeding tls202_appln_title: %w", err)
		}
	}

	abstracts := []struct {
		id       int64
		lg       string
		abstract string
	}{
		{3001, "en", "A process for recycling rare earth magnets in which neodymium and praseodymium are recovered from shredded sintered magnet scrap."},
		{3002, "en", "Solvent extraction stages separate individual lanthanide elements from a mixed chloride leach liquor."},
		{3003, "en", "An electrolysis cell for producing dysprosium master alloys at reduced energy consumption."},
		{3004, "en", "A phosphor blend with improved lumen maintenance based on yttrium oxide host lattices."},
		{3005, "de", "Ein gesinterter Magnet mit verbesserter Temperaturstabilitaet."},
		{3006, "en", "Crushed lamp waste is leached to recover yttrium and europium for reuse in phosphors."},
		{3007, "en", "A generator topology that lowers the heavy rare earth content of permanent magnets without sacrificing torque density."},
		{3008, "en", "A nickel-rich layered oxide cathode material with improved cycle life."},
	}
	for _, a := range abstracts {
		if _, err := tx.Exec(
			`INSERT INTO tls203_appln_abstr (appln_id, appln_abstract_lg, appln_abstract) VALUES (?, ?, ?)`,
			a.id, a.lg, a.abstract,
		); err != nil {
			return fmt.Errorf("seeding tls203_appln_abstr: %w", err)
		}
	}

	cpc := []struct {
		id     int64
		symbol string
	}{
		{3001, "C22B  59/00"},
		{3001, "H01F   1/057"},
		{3001, "Y02W  30/52"},
		{3002, "C22B  59/00"},
		{3003, "C25C   3/34"},
		{3004, "C09K  11/7774"},
		{3005, "H01F   1/057"},
		{3006, "Y02W  30/52"},
		{3007, "H02K   1/276"},
		{3008, "H01M   4/525"},
	}
	for _, c := range cpc {
		if _, err := tx.Exec(
			`INSERT INTO tls224_appln_cpc (appln_id, cpc_class_symbol) VALUES (?, ?)`,
			c.id, c.symbol,
		); err != nil {
			return fmt.Errorf("seeding tls224_appln_cpc: %w", err)
		}
	}

	publications := []struct {
		id      int64
		auth    string
		nr      string
		kind    string
		applnID int64
		date    string
	}{
		// Dataset publications.
		{9101, "EP", "3511111", "A1", 3001, "2019-06-12"},
		{9102, "US", "2020123456", "A1", 3002, "2020-09-03"},
		{9103, "CN", "111222333", "A", 3003, "2021-04-20"},
		{9104, "JP", "2021180004", "A", 3004, "2021-11-11"},
		{9105, "DE", "102021000005", "A1", 3005, "2022-03-02"},
		{9106, "FR", "3131000", "A1", 3006, "2023-05-24"},
		{9107, "US", "2024011111", "A1", 3007, "2024-01-18"},
		{9108, "KR", "1020190000008", "A", 3008, "2018-08-08"},
		{9109, "EP", "3511111", "B1", 3001, "2021-02-17"},
		// External citing publications.
		{9201, "US", "2021555001", "A1", 3101, "2021-07-01"},
		{9202, "CN", "114000222", "A", 3102, "2022-02-14"},
		{9203, "EP", "4099003", "A1", 3103, "2022-10-05"},
		{9204, "US", "2023555004", "A1", 3104, "2023-03-30"},
		// Prior-art publications cited by the dataset.
		{9301, "US", "2010200301", "A1", 3201, "2010-05-05"},
		{9302, "JP", "2012300302", "A", 3202, "2012-12-01"},
		{9303, "DE", "102008000303", "A1", 3203, "2008-03-15"},
	}
	for _, p := range publications {
		if _, err := tx.Exec(
			`INSERT INTO tls211_pat_publn (pat_publn_id, publn_auth, publn_nr, publn_kind, appln_id, publn_date)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			p.id, p.auth, p.nr, p.kind, p.applnID, p.date,
		); err != nil {
			return fmt.Errorf("seeding tls211_pat_publn: %w", err)
		}
	}

	citations := []struct {
		citingPublnID int64
		citnID        int
		origin        string
		citedPublnID  int64
		citedApplnID  int64
	}{
		// Forward: external publications citing the dataset.
		{9201, 1, "SEA", 9101, 3001},
		{9202, 1, "APP", 9101, 3001},
		{9202, 2, "SEA", 9103, 3003},
		{9203, 1, "ISR", 9104, 3004},
		{9204, 1, "SEA", 9102, 3002},
		{9204, 2, "APP", 9109, 3001},
		// Backward: the dataset citing prior art. The zero row is a
		// non-patent-literature citation.
		{9101, 1, "APP", 9301, 3201},
		{9101, 2, "SEA", 9302, 3202},
		{9102, 1, "ISR", 9301, 3201},
		{9104, 1, "APP", 9303, 3203},
		{9106, 1, "SEA", 9302, 3202},
		{9107, 1, "APP", 0, 0},
		// Decoy: the lithium application cites prior art but is not in
		// the dataset, so this row must never surface.
		{9108, 1, "SEA", 9301, 3201},
	}
	for _, c := range citations {
		if _, err := tx.Exec(
			`INSERT INTO tls212_citation (pat_publn_id, citn_id, citn_origin, cited_pat_publn_id, cited_appln_id)
			 VALUES (?, ?, ?, ?, ?)`,
			c.citingPublnID, c.citnID, c.origin, c.citedPublnID, c.citedApplnID,
		); err != nil {
			return fmt.Errorf("seeding tls212_citation: %w", err)
		}
	}

	persons := []struct {
		id   int64
		name string
		ctry string
	}{
		{5001, "Magnetwerk GmbH", "DE"},
		{5002, "Rare Metals Recovery Inc", "US"},
		{5003, "Baotou Rare Earth Research Institute", "CN"},
		{5004, "Kyoto Materials KK", "JP"},
		{5005, "Societe des Terres Rares", "FR"},
		{5006, "Nordic Lanthanides AB", "SE"},
		{5007, "Offshore Metals Holding", ""},
		{5008, "Hanbit Battery Co", "KR"},
	}
	for _, p := range persons {
		if _, err := tx.Exec(
			`INSERT INTO tls206_person (person_id, person_name, person_ctry_code) VALUES (?, ?, ?)`,
			p.id, p.name, p.ctry,
		); err != nil {
			return fmt.Errorf("seeding tls206_person: %w", err)
		}
	}

	links := []struct {
		personID int64
		applnID  int64
		appltSeq int
		invtSeq  int
	}{
		{5001, 3001, 1, 0},
		{5002, 3001, 2, 0},
		{5004, 3001, 0, 1}, // inventor only, filtered out of applicant rows
		{5002, 3002, 1, 0},
		{5003, 3003, 1, 0},
		{5004, 3004, 1, 0},
		{5001, 3005, 1, 0},
		{5007, 3005, 2, 0}, // applicant without a country code
		{5005, 3006, 1, 0},
		{5006, 3006, 2, 0},
		{5002, 3007, 1, 0},
		{5008, 3008, 1, 0},
	}
	for _, l := range links {
		if _, err := tx.Exec(
			`INSERT INTO tls207_pers_appln (person_id, appln_id, applt_seq_nr, invt_seq_nr) VALUES (?, ?, ?, ?)`,
			l.personID, l.applnID, l.appltSeq, l.invtSeq,
		); err != nil {
			return fmt.Errorf("seeding tls207_pers_appln: %w", err)
		}
	}

	countries := []struct {
		code      string
		name      string
		continent string
	}{
		{"CN", "China", "Asia"},
		{"DE", "Germany", "Europe"},
		{"EP", "European Patent Office", "Europe"},
		{"FR", "France", "Europe"},
		{"JP", "Japan", "Asia"},
		{"KR", "South Korea", "Asia"},
		{"SE", "Sweden", "Europe"},
		{"US", "United States of America", "North America"},
	}
	for _, c := range countries {
		if _, err := tx.Exec(
			`INSERT INTO tls801_country (ctry_code, st3_name, continent) VALUES (?, ?, ?)`,
			c.code, c.name, c.continent,
		); err != nil {
			return fmt.Errorf("seeding tls801_country: %w", err)
		}
	}

	return tx.Commit()
}
