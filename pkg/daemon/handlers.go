package daemon

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"diptab/pkg/config"
	"diptab/pkg/dip"
	"diptab/pkg/export"
	"diptab/pkg/version"
)

// recordInput carries the free-form text the operator typed. Parsing is
// lenient: malformed numbers degrade to 0 instead of rejecting the
// record, same as the entry form always behaved.
type recordInput struct {
	KG  string `json:"kg"`
	DIP string `json:"dip"`
}

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getRecords(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, store.Snapshot())
}

func addRecord(c *gin.Context) {
	var in recordInput
	if err := c.BindJSON(&in); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	r := dip.NewRecord(in.KG, in.DIP)
	store.Add(r)

	logrus.WithFields(logrus.Fields{
		"kg":  r.KG,
		"dip": r.DIP,
	}).Info("record added")

	c.IndentedJSON(http.StatusCreated, r)
}

func updateRecord(c *gin.Context) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	var in recordInput
	if err := c.BindJSON(&in); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	r := dip.NewRecord(in.KG, in.DIP)
	if err := store.Update(i, r); err != nil {
		c.IndentedJSON(http.StatusNotFound, err.Error())
		_ = c.AbortWithError(http.StatusNotFound, err)
		return
	}

	c.IndentedJSON(http.StatusOK, r)
}

func deleteRecord(c *gin.Context) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if err := store.Delete(i); err != nil {
		c.IndentedJSON(http.StatusNotFound, err.Error())
		_ = c.AbortWithError(http.StatusNotFound, err)
		return
	}

	c.IndentedJSON(http.StatusOK, "ok")
}

func clearRecords(c *gin.Context) {
	store.Clear()
	logrus.Info("records cleared")
	c.IndentedJSON(http.StatusOK, "ok")
}

// tableMode resolves and validates the mode query parameter. Absent and
// empty both mean the configured default.
func tableMode(c *gin.Context) (dip.Mode, bool) {
	mode := dip.Mode(c.Query("mode"))
	if mode == "" {
		return conf.DefaultMode(), true
	}
	if !mode.Valid() {
		err := fmt.Errorf("mode must be %q or %q, got %q", dip.ModeKG, dip.ModeLitre, mode)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return "", false
	}
	return mode, true
}

func buildTable(mode dip.Mode) dip.Table {
	return dip.BuildTable(store.Snapshot(), dip.Options{
		Mode:         mode,
		Density:      conf.Density(),
		DefaultSlope: conf.DefaultSlope(),
	})
}

func getTable(c *gin.Context) {
	mode, ok := tableMode(c)
	if !ok {
		return
	}
	c.IndentedJSON(http.StatusOK, buildTable(mode))
}

func exportCSV(c *gin.Context) {
	mode, ok := tableMode(c)
	if !ok {
		return
	}

	data, err := export.EncodeCSV(buildTable(mode))
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=output_%s.csv", mode))
	c.Data(http.StatusOK, "text/csv", data)
}

func exportPDF(c *gin.Context) {
	mode, ok := tableMode(c)
	if !ok {
		return
	}

	name := string(mode)
	title := fmt.Sprintf("DIP Table (%s)", mode)
	if c.Query("raw") == "true" {
		// The "raw" download is always the unconverted KG table.
		mode = dip.ModeKG
		name = "raw"
		title = "DIP Table (raw KG)"
	}

	var buf bytes.Buffer
	if err := export.WritePDF(&buf, buildTable(mode), title); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=output_%s.pdf", name))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func getEvents(c *gin.Context) {
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
