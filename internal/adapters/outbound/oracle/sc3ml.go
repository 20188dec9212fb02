package oracle

import (
	"fmt"

	"github.com/agentflare-ai/go-xmldom"

	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

// FormatSC3ML is the summary format for SeisComP SC3ML documents.
const FormatSC3ML = "sc3ml"

// readSC3ML walks Inventory/network/station/sensorLocation/stream. A
// document without an Inventory element is an empty inventory.
func readSC3ML(root xmldom.Element) (domain.OracleSummary, error) {
	sum := domain.OracleSummary{Format: FormatSC3ML}

	inv := child(root, "Inventory")
	if inv == nil {
		return sum, nil
	}

	for _, net := range children(inv, "network") {
		code, err := requireAttr(net, "network", "code")
		if err != nil {
			return sum, err
		}
		for _, sta := range children(net, "station") {
			staCode, err := requireAttr(sta, fmt.Sprintf("network %q station", code), "code")
			if err != nil {
				return sum, err
			}
			what := fmt.Sprintf("station %s.%s", code, staCode)
			for _, loc := range children(sta, "sensorLocation") {
				for _, stream := range children(loc, "stream") {
					if _, err := requireAttr(stream, what+" stream", "code"); err != nil {
						return sum, err
					}
					sum.Channels++
				}
			}
			sum.Stations++
		}
		sum.Networks++
	}

	return sum, nil
}
