// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ApplicantGeo is one applicant row attached to a dataset application,
// joined from tls207_pers_appln, tls206_person, and tls801_country.
type ApplicantGeo struct {
	// ApplnID is the application the applicant row belongs to.
	ApplnID int64 `json:"appln_id" yaml:"appln_id"`

	// SeqNr is the applicant sequence number; 1 marks the primary
	// applicant.
	SeqNr int `json:"applt_seq_nr" yaml:"applt_seq_nr"`

	// PersonName is the applicant name as recorded in the person table.
	PersonName string `json:"person_name" yaml:"person_name"`

	// CountryCode is the two-letter applicant country code.
	CountryCode string `json:"person_ctry_code" yaml:"person_ctry_code"`

	// CountryName is the display name from the country lookup.
	CountryName string `json:"country_name" yaml:"country_name"`

	// Region is the continent label from the country lookup.
	Region string `json:"region" yaml:"region"`
}

// CountryShare aggregates dataset applications by primary applicant
// country.
type CountryShare struct {
	CountryCode  string  `json:"country_code" yaml:"country_code"`
	CountryName  string  `json:"country_name" yaml:"country_name"`
	Region       string  `json:"region" yaml:"region"`
	Applications int     `json:"applications" yaml:"applications"`
	Share        float64 `json:"share" yaml:"share"`
}

// GeoProfile is the output of geographic enrichment.
type GeoProfile struct {
	// Applicants lists every applicant row for the dataset, ordered by
	// application id then sequence number.
	Applicants []ApplicantGeo `json:"applicants" yaml:"applicants"`

	// Primary maps each application id to its primary applicant row.
	// At most one entry exists per application id.
	Primary map[int64]ApplicantGeo `json:"primary" yaml:"primary"`

	// Countries is the per-country breakdown over primary applicants,
	// ordered by descending application count.
	Countries []CountryShare `json:"countries" yaml:"countries"`
}
