package model

import "encoding/json"

// DisplayName is a job field that upstream APIs deliver either as a bare
// string or as an object carrying a display_name key. Both decode to the
// same value; absent and null both leave Present false.
type DisplayName struct {
	Value   string
	Present bool
}

func (d *DisplayName) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		d.Value, d.Present = s, s != ""
		return nil
	}
	var obj struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		// Unrecognized shape degrades to "not present" rather than failing
		// the whole record.
		d.Value, d.Present = "", false
		return nil
	}
	d.Value, d.Present = obj.DisplayName, obj.DisplayName != ""
	return nil
}

func (d DisplayName) MarshalJSON() ([]byte, error) {
	if !d.Present {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		DisplayName string `json:"display_name"`
	}{d.Value})
}

// Category decodes from a bare string or an object with a label key.
type Category struct {
	Label   string
	Present bool
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		c.Label, c.Present = s, s != ""
		return nil
	}
	var obj struct {
		Label string `json:"label"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		c.Label, c.Present = "", false
		return nil
	}
	c.Label, c.Present = obj.Label, obj.Label != ""
	return nil
}

func (c Category) MarshalJSON() ([]byte, error) {
	if !c.Present {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		Label string `json:"label"`
	}{c.Label})
}

// Job is one job-like record as returned by the job-search endpoint.
// Salary precedence for presentation: the pre-formatted Salary string wins,
// then the min/max pair, then min alone.
type Job struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Company      DisplayName `json:"company"`
	Location     DisplayName `json:"location"`
	Category     Category    `json:"category"`
	Description  string      `json:"description,omitempty"`
	Salary       string      `json:"salary,omitempty"`
	SalaryMin    *float64    `json:"salary_min,omitempty"`
	SalaryMax    *float64    `json:"salary_max,omitempty"`
	ContractType string      `json:"contract_type,omitempty"`
	Created      string      `json:"created,omitempty"`
	RedirectURL  string      `json:"redirect_url,omitempty"`
}
