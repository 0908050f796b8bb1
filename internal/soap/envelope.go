package soap

import "encoding/xml"

// soapEnvelopeNS is the SOAP 1.1 envelope namespace.
const soapEnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

// requestEnvelope decodes an inbound envelope. Operations are matched by
// local element name so any client prefix works.
type requestEnvelope struct {
	XMLName xml.Name    `xml:"Envelope"`
	Body    requestBody `xml:"Body"`
}

type requestBody struct {
	CreateProduct *createProductArgs `xml:"CreateProduct"`
	GetProduct    *getProductArgs    `xml:"GetProduct"`
	PatchProduct  *patchProductArgs  `xml:"PatchProduct"`
	DeleteProduct *deleteProductArgs `xml:"DeleteProduct"`
}

type createProductArgs struct {
	Name  string  `xml:"name"`
	About string  `xml:"about"`
	Price float64 `xml:"price"`
}

type getProductArgs struct {
	ID string `xml:"id"`
}

type patchProductArgs struct {
	ID    string  `xml:"id"`
	Name  string  `xml:"name"`
	About string  `xml:"about"`
	Price float64 `xml:"price"`
}

type deleteProductArgs struct {
	ID string `xml:"id"`
}

// responseEnvelope wraps exactly one payload or one fault.
type responseEnvelope struct {
	XMLName xml.Name     `xml:"soap:Envelope"`
	NS      string       `xml:"xmlns:soap,attr"`
	Body    responseBody `xml:"soap:Body"`
}

type responseBody struct {
	Payload any    `xml:",omitempty"`
	Fault   *Fault `xml:"soap:Fault,omitempty"`
}

// Fault is the envelope-level error, carrying a machine code and a
// human-readable string.
type Fault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

// Fault codes distinguishing caller mistakes from backend failures.
const (
	FaultClient = "Client"
	FaultServer = "Server"
)

type createProductResponse struct {
	XMLName xml.Name `xml:"CreateProductResponse"`
	Result  string   `xml:"result"`
}

type getProductResponse struct {
	XMLName xml.Name `xml:"GetProductResponse"`
	ID      int64    `xml:"id"`
	Name    string   `xml:"name"`
	About   string   `xml:"about"`
	Price   float64  `xml:"price"`
}

type patchProductResponse struct {
	XMLName xml.Name `xml:"PatchProductResponse"`
	Result  string   `xml:"result"`
}

type deleteProductResponse struct {
	XMLName xml.Name `xml:"DeleteProductResponse"`
	Result  string   `xml:"result"`
}

func successEnvelope(payload any) responseEnvelope {
	return responseEnvelope{
		NS:   soapEnvelopeNS,
		Body: responseBody{Payload: payload},
	}
}

func faultEnvelope(code, message string) responseEnvelope {
	return responseEnvelope{
		NS:   soapEnvelopeNS,
		Body: responseBody{Fault: &Fault{Code: code, String: message}},
	}
}
