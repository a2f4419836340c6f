package client

import (
	"encoding/json"
	"net/url"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"diptab/pkg/config"
	"diptab/pkg/dip"
)

// recordPayload mirrors the daemon's lenient free-form record input.
type recordPayload struct {
	KG  string `json:"kg"`
	DIP string `json:"dip"`
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get daemon version")
	}
	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}
	return v, nil
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}
	return &conf, nil
}

func (c *Client) GetRecords() ([]dip.Record, error) {
	ret, err := c.Get("/records")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get records")
	}

	var records []dip.Record
	if err := json.Unmarshal([]byte(ret), &records); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal records")
	}
	return records, nil
}

// AddRecord sends the operator's raw text fields to the daemon, which
// applies the same parse-or-zero rule as the entry form.
func (c *Client) AddRecord(kg, dipText string) (dip.Record, error) {
	var r dip.Record

	payload, err := json.Marshal(recordPayload{KG: kg, DIP: dipText})
	if err != nil {
		return r, err
	}
	ret, err := c.Post("/records", string(payload))
	if err != nil {
		return r, pkgerrors.Wrapf(err, "failed to add record")
	}
	if err := json.Unmarshal([]byte(ret), &r); err != nil {
		return r, pkgerrors.Wrapf(err, "failed to unmarshal record")
	}
	return r, nil
}

func (c *Client) UpdateRecord(index int, kg, dipText string) (dip.Record, error) {
	var r dip.Record

	payload, err := json.Marshal(recordPayload{KG: kg, DIP: dipText})
	if err != nil {
		return r, err
	}
	ret, err := c.Put("/records/"+strconv.Itoa(index), string(payload))
	if err != nil {
		return r, pkgerrors.Wrapf(err, "failed to update record %d", index)
	}
	if err := json.Unmarshal([]byte(ret), &r); err != nil {
		return r, pkgerrors.Wrapf(err, "failed to unmarshal record")
	}
	return r, nil
}

func (c *Client) DeleteRecord(index int) error {
	_, err := c.Delete("/records/" + strconv.Itoa(index))
	return pkgerrors.Wrapf(err, "failed to delete record %d", index)
}

func (c *Client) ClearRecords() error {
	_, err := c.Delete("/records")
	return pkgerrors.Wrapf(err, "failed to clear records")
}

func (c *Client) GetTable(mode dip.Mode) (*dip.Table, error) {
	ret, err := c.Get(pathWithQuery("/table", modeQuery(mode)))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get table")
	}

	var table dip.Table
	if err := json.Unmarshal([]byte(ret), &table); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal table")
	}
	return &table, nil
}

func (c *Client) GetCSV(mode dip.Mode) ([]byte, error) {
	ret, err := c.Get(pathWithQuery("/export/csv", modeQuery(mode)))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to export csv")
	}
	return []byte(ret), nil
}

func (c *Client) GetPDF(mode dip.Mode, raw bool) ([]byte, error) {
	q := modeQuery(mode)
	if raw {
		q.Set("raw", "true")
	}
	ret, err := c.Get(pathWithQuery("/export/pdf", q))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to export pdf")
	}
	return []byte(ret), nil
}

// modeQuery builds the optional mode parameter. An empty mode is left
// out of the query entirely so the daemon applies its configured
// default.
func modeQuery(mode dip.Mode) url.Values {
	q := url.Values{}
	if mode != "" {
		q.Set("mode", string(mode))
	}
	return q
}

func pathWithQuery(path string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
