package oracle

import (
	"fmt"

	"github.com/agentflare-ai/go-xmldom"

	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

// FormatFDSN is the summary format for FDSN StationXML documents.
const FormatFDSN = "fdsn"

func readFDSN(root xmldom.Element) (domain.OracleSummary, error) {
	sum := domain.OracleSummary{Format: FormatFDSN}

	if _, err := requireAttr(root, "FDSNStationXML", "schemaVersion"); err != nil {
		return sum, err
	}
	if child(root, "Source") == nil {
		return sum, reject(root, "FDSNStationXML: missing required field: Source")
	}
	created := child(root, "Created")
	if created == nil {
		return sum, reject(root, "FDSNStationXML: missing required field: Created")
	}
	if _, err := parseDateTime(text(created)); err != nil {
		return sum, reject(created, "Created: invalid data: %s", err)
	}

	for _, net := range children(root, "Network") {
		code, err := requireAttr(net, "Network", "code")
		if err != nil {
			return sum, err
		}
		what := fmt.Sprintf("network %q", code)
		if err := checkDateAttrs(net, what, "startDate", "endDate"); err != nil {
			return sum, err
		}

		for _, sta := range children(net, "Station") {
			channels, err := readFDSNStation(sta, code)
			if err != nil {
				return sum, err
			}
			sum.Stations++
			sum.Channels += channels
		}
		sum.Networks++
	}

	return sum, nil
}

func readFDSNStation(sta xmldom.Element, netCode string) (int, error) {
	code, err := requireAttr(sta, fmt.Sprintf("network %q station", netCode), "code")
	if err != nil {
		return 0, err
	}
	what := fmt.Sprintf("station %s.%s", netCode, code)

	if err := checkDateAttrs(sta, what, "startDate", "endDate"); err != nil {
		return 0, err
	}
	if err := requireRange(sta, what, "Latitude", -90, 90); err != nil {
		return 0, err
	}
	if err := requireRange(sta, what, "Longitude", -180, 180); err != nil {
		return 0, err
	}
	if _, err := requireFloat(sta, what, "Elevation"); err != nil {
		return 0, err
	}
	site := child(sta, "Site")
	if site == nil {
		return 0, reject(sta, "%s: missing required field: Site", what)
	}
	if child(site, "Name") == nil {
		return 0, reject(site, "%s: missing required field: Site/Name", what)
	}

	channels := children(sta, "Channel")
	for _, ch := range channels {
		if err := readFDSNChannel(ch, what); err != nil {
			return 0, err
		}
	}
	return len(channels), nil
}

func readFDSNChannel(ch xmldom.Element, station string) error {
	code, err := requireAttr(ch, station+" channel", "code")
	if err != nil {
		return err
	}
	loc, err := requireAttr(ch, station+" channel "+code, "locationCode")
	if err != nil {
		return err
	}
	what := fmt.Sprintf("channel %s.%s.%s", station, loc, code)

	if err := checkDateAttrs(ch, what, "startDate", "endDate"); err != nil {
		return err
	}
	if err := requireRange(ch, what, "Latitude", -90, 90); err != nil {
		return err
	}
	if err := requireRange(ch, what, "Longitude", -180, 180); err != nil {
		return err
	}
	for _, name := range []string{"Elevation", "Depth", "Azimuth", "Dip", "SampleRate"} {
		if _, err := requireFloat(ch, what, name); err != nil {
			return err
		}
	}
	return nil
}
