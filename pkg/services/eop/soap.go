package eop

import (
	"encoding/xml"
	"strings"
)

const (
	soapEnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	serviceNS      = "http://data.iers.org/eris/webservice/eop"
	xsiNS          = "http://www.w3.org/2001/XMLSchema-instance"
)

type readEOPRequest struct {
	XMLName xml.Name `xml:"soapenv:Envelope"`
	SoapNS  string   `xml:"xmlns:soapenv,attr"`
	EopNS   string   `xml:"xmlns:eop,attr"`
	Body    struct {
		Call readEOPCall `xml:"eop:readEOP"`
	} `xml:"soapenv:Body"`
}

type readEOPCall struct {
	Param  string `xml:"param"`
	Series string `xml:"series"`
	MJD    string `xml:"mjd"`
}

func newReadEOPRequest(param, series, mjd string) readEOPRequest {
	req := readEOPRequest{SoapNS: soapEnvelopeNS, EopNS: serviceNS}
	req.Body.Call = readEOPCall{Param: param, Series: series, MJD: mjd}
	return req
}

type responseEnvelope struct {
	Body struct {
		Fault    *soapFault `xml:"Fault"`
		Response struct {
			Values []responseValue `xml:",any"`
		} `xml:",any"`
	} `xml:"Body"`
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

type responseValue struct {
	Nil  string `xml:"http://www.w3.org/2001/XMLSchema-instance nil,attr"`
	Text string `xml:",chardata"`
}

// value returns the first return value of the response, "" when the service
// returned nothing for the epoch.
func (e responseEnvelope) value() string {
	if e.Body.Fault != nil || len(e.Body.Response.Values) == 0 {
		return ""
	}
	v := e.Body.Response.Values[0]
	if v.Nil == "true" || v.Nil == "1" {
		return ""
	}
	return strings.TrimSpace(v.Text)
}
