package soap

// productsServiceWSDL documents the four product operations exposed by
// the gateway.
const productsServiceWSDL = `<?xml version="1.0" encoding="UTF-8"?>
<definitions name="ProductsService"
             targetNamespace="http://storefront.local/products.wsdl"
             xmlns="http://schemas.xmlsoap.org/wsdl/"
             xmlns:soap="http://schemas.xmlsoap.org/wsdl/soap/"
             xmlns:tns="http://storefront.local/products.wsdl"
             xmlns:xsd="http://www.w3.org/2001/XMLSchema">

  <message name="CreateProductRequest">
    <part name="name" type="xsd:string"/>
    <part name="about" type="xsd:string"/>
    <part name="price" type="xsd:decimal"/>
  </message>
  <message name="CreateProductResponse">
    <part name="result" type="xsd:string"/>
  </message>

  <message name="GetProductRequest">
    <part name="id" type="xsd:string"/>
  </message>
  <message name="GetProductResponse">
    <part name="id" type="xsd:long"/>
    <part name="name" type="xsd:string"/>
    <part name="about" type="xsd:string"/>
    <part name="price" type="xsd:decimal"/>
  </message>

  <message name="PatchProductRequest">
    <part name="id" type="xsd:string"/>
    <part name="name" type="xsd:string"/>
    <part name="about" type="xsd:string"/>
    <part name="price" type="xsd:decimal"/>
  </message>
  <message name="PatchProductResponse">
    <part name="result" type="xsd:string"/>
  </message>

  <message name="DeleteProductRequest">
    <part name="id" type="xsd:string"/>
  </message>
  <message name="DeleteProductResponse">
    <part name="result" type="xsd:string"/>
  </message>

  <portType name="ProductsPort">
    <operation name="CreateProduct">
      <input message="tns:CreateProductRequest"/>
      <output message="tns:CreateProductResponse"/>
    </operation>
    <operation name="GetProduct">
      <input message="tns:GetProductRequest"/>
      <output message="tns:GetProductResponse"/>
    </operation>
    <operation name="PatchProduct">
      <input message="tns:PatchProductRequest"/>
      <output message="tns:PatchProductResponse"/>
    </operation>
    <operation name="DeleteProduct">
      <input message="tns:DeleteProductRequest"/>
      <output message="tns:DeleteProductResponse"/>
    </operation>
  </portType>

  <binding name="ProductsBinding" type="tns:ProductsPort">
    <soap:binding style="rpc" transport="http://schemas.xmlsoap.org/soap/http"/>
    <operation name="CreateProduct">
      <soap:operation soapAction="CreateProduct"/>
      <input><soap:body use="literal"/></input>
      <output><soap:body use="literal"/></output>
    </operation>
    <operation name="GetProduct">
      <soap:operation soapAction="GetProduct"/>
      <input><soap:body use="literal"/></input>
      <output><soap:body use="literal"/></output>
    </operation>
    <operation name="PatchProduct">
      <soap:operation soapAction="PatchProduct"/>
      <input><soap:body use="literal"/></input>
      <output><soap:body use="literal"/></output>
    </operation>
    <operation name="DeleteProduct">
      <soap:operation soapAction="DeleteProduct"/>
      <input><soap:body use="literal"/></input>
      <output><soap:body use="literal"/></output>
    </operation>
  </binding>

  <service name="ProductsService">
    <port name="ProductsPort" binding="tns:ProductsBinding">
      <soap:address location="http://localhost:8003/wsdl"/>
    </port>
  </service>
</definitions>
`
