package gst

import "strings"

// State is an Indian state or union territory with its Shopify/ISO province
// code and its two-digit GST state code.
type State struct {
	Code    string
	GSTCode string
	Name    string
}

var states = []State{
	{"AN", "35", "Andaman and Nicobar Islands"},
	{"AP", "37", "Andhra Pradesh"},
	{"AR", "12", "Arunachal Pradesh"},
	{"AS", "18", "Assam"},
	{"BR", "10", "Bihar"},
	{"CH", "04", "Chandigarh"},
	{"CG", "22", "Chhattisgarh"},
	{"DN", "26", "Dadra and Nagar Haveli and Daman and Diu"},
	{"DL", "07", "Delhi"},
	{"GA", "30", "Goa"},
	{"GJ", "24", "Gujarat"},
	{"HR", "06", "Haryana"},
	{"HP", "02", "Himachal Pradesh"},
	{"JK", "01", "Jammu and Kashmir"},
	{"JH", "20", "Jharkhand"},
	{"KA", "29", "Karnataka"},
	{"KL", "32", "Kerala"},
	{"LA", "38", "Ladakh"},
	{"LD", "31", "Lakshadweep"},
	{"MP", "23", "Madhya Pradesh"},
	{"MH", "27", "Maharashtra"},
	{"MN", "14", "Manipur"},
	{"ML", "17", "Meghalaya"},
	{"MZ", "15", "Mizoram"},
	{"NL", "13", "Nagaland"},
	{"OR", "21", "Odisha"},
	{"PY", "34", "Puducherry"},
	{"PB", "03", "Punjab"},
	{"RJ", "08", "Rajasthan"},
	{"SK", "11", "Sikkim"},
	{"TN", "33", "Tamil Nadu"},
	{"TS", "36", "Telangana"},
	{"TR", "16", "Tripura"},
	{"UP", "09", "Uttar Pradesh"},
	{"UK", "05", "Uttarakhand"},
	{"WB", "19", "West Bengal"},
}

var stateIndex = func() map[string]State {
	idx := make(map[string]State, len(states)*3)
	for _, s := range states {
		idx[s.Code] = s
		idx[s.GSTCode] = s
		idx[strings.ToUpper(s.Name)] = s
	}
	// Common alternates seen in storefront exports.
	idx["OD"] = idx["OR"]
	idx["ORISSA"] = idx["OR"]
	idx["TG"] = idx["TS"]
	idx["UT"] = idx["UK"]
	idx["PONDICHERRY"] = idx["PY"]
	idx["NEW DELHI"] = idx["DL"]
	return idx
}()

// LookupState finds a state by province code, GST numeric code or name.
func LookupState(v string) (State, bool) {
	s, ok := stateIndex[NormalizeStateCode(v)]
	return s, ok
}

// GSTINStateCode returns the two-digit state prefix of a GSTIN, or "" when
// the GSTIN is too short or does not start with digits.
func GSTINStateCode(gstin string) string {
	g := strings.TrimSpace(gstin)
	if len(g) < 2 || g[0] < '0' || g[0] > '9' || g[1] < '0' || g[1] > '9' {
		return ""
	}
	return g[:2]
}

// PlaceOfSupply formats a state code as "29-Karnataka" when known.
func PlaceOfSupply(code string) string {
	s, ok := LookupState(code)
	if !ok {
		return NormalizeStateCode(code)
	}
	return s.GSTCode + "-" + s.Name
}
