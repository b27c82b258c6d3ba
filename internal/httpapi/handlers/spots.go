package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/hamprop/backend/internal/textfmt"
)

// PSKReporter queries PSKReporter's spot-query API and orients the
// emitted CSV depending on whether the client named itself as sender
// (by*) or receiver (of*) — spec.md §4.I.
func (h Handlers) PSKReporter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	maxAge := q.Get("maxage")
	if maxAge == "" {
		maxAge = "900"
	}

	var call, grid string
	var asReceiver bool
	switch {
	case q.Get("bycall") != "":
		call, asReceiver = q.Get("bycall"), false
	case q.Get("ofcall") != "":
		call, asReceiver = q.Get("ofcall"), true
	case q.Get("bygrid") != "":
		grid, asReceiver = q.Get("bygrid"), false
	case q.Get("ofgrid") != "":
		grid, asReceiver = q.Get("ofgrid"), true
	}

	url := "https://retrieve.pskreporter.info/query?flowStartSeconds=-" + maxAge
	if call != "" {
		url += "&senderCallsign=" + call
	}
	if grid != "" {
		url += "&senderLocator=" + grid
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		h.Logger.Warn("pskreporter query failed", "error", err)
		http.Error(w, "spot lookup unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	var feed struct {
		Reports []struct {
			ReceiverCallsign string `xml:"receiverCallsign,attr"`
			ReceiverLocator  string `xml:"receiverLocator,attr"`
			SenderCallsign   string `xml:"senderCallsign,attr"`
			SenderLocator    string `xml:"senderLocator,attr"`
			Frequency        int64  `xml:"frequency,attr"`
			Mode             string `xml:"mode,attr"`
			SNR              int    `xml:"sNR,attr"`
			FlowStartSeconds int64  `xml:"flowStartSeconds,attr"`
		} `xml:"receptionReport"`
	}
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		http.Error(w, "spot lookup unavailable", http.StatusBadGateway)
		return
	}

	var b strings.Builder
	for _, rep := range feed.Reports {
		s := textfmt.SpotRecord{
			PostingUnixTime: rep.FlowStartSeconds,
			DEGrid:          rep.ReceiverLocator,
			DECall:          rep.ReceiverCallsign,
			DXGrid:          rep.SenderLocator,
			DXCall:          rep.SenderCallsign,
			Mode:            rep.Mode,
			Hz:              rep.Frequency,
			SNR:             rep.SNR,
		}
		if asReceiver {
			s = s.Swapped()
		}
		b.WriteString(s.CSV())
		b.WriteByte('\n')
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(b.String()))
}
