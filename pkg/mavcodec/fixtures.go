// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

// mavcodec never parses the XML dialect that would normally build a
// Document. CommonDocument and ArduPilotMegaDocument are small,
// hand-built stand-ins covering a handful of common messages, for use
// by tests and as the definition sets the cmd CLI's --definitions flag
// selects between.

// CommonDocument returns a Document carrying ATTITUDE and PARAM_VALUE,
// mirroring a "common" definition set.
func CommonDocument() Document {
	return Document{
		ID: "common",
		Messages: []MessageDef{
			{
				ID:   30,
				Name: "ATTITUDE",
				Fields: []FieldDef{
					{Type: "uint32", Name: "time_boot_ms"},
					{Type: "float", Name: "roll"},
					{Type: "float", Name: "pitch"},
					{Type: "float", Name: "yaw"},
					{Type: "float", Name: "rollspeed"},
					{Type: "float", Name: "pitchspeed"},
					{Type: "float", Name: "yawspeed"},
				},
			},
			{
				ID:   22,
				Name: "PARAM_VALUE",
				Fields: []FieldDef{
					{Type: "char[16]", Name: "param_id"},
					{Type: "float", Name: "param_value"},
					{Type: "uint8", Name: "param_type"},
					{Type: "uint16", Name: "param_count"},
					{Type: "uint16", Name: "param_index"},
				},
			},
		},
	}
}

// ArduPilotMegaDocument returns a Document carrying GPS_STATUS,
// mirroring an "ardupilotmega" definition set.
func ArduPilotMegaDocument() Document {
	return Document{
		ID: "ardupilotmega",
		Messages: []MessageDef{
			{
				ID:   25,
				Name: "GPS_STATUS",
				Fields: []FieldDef{
					{Type: "uint8", Name: "satellites_visible"},
					{Type: "uint8[5]", Name: "satellite_prn"},
					{Type: "uint8[5]", Name: "satellite_used"},
					{Type: "uint8[5]", Name: "satellite_elevation"},
					{Type: "uint8[5]", Name: "satellite_azimuth"},
					{Type: "uint8[5]", Name: "satellite_snr"},
				},
			},
		},
	}
}

// DefaultDocuments returns the default definition set: "common" and
// "ardupilotmega".
func DefaultDocuments() []Document {
	return []Document{CommonDocument(), ArduPilotMegaDocument()}
}
