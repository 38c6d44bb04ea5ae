package extraction

// Prompts sent alongside the document bytes. PDFs get the full GST
// schema, images a slimmer one (photographed invoices rarely carry the
// full summary block), and the generic prompt asks for a schema-free
// dump that the normalizer reshapes afterwards.

const pdfExtractionPrompt = `Please analyze this invoice and extract ALL information in the following detailed JSON format:
{
  "invoice_number": "",
  "date": "",
  "invoice_type": "",
  "place_of_supply": "",
  "customer_details": {
    "name": "",
    "phone": "",
    "email": "",
    "address": "",
    "gst_number": "",
    "type": ""
  },
  "business_details": {
    "name": "",
    "gstin": "",
    "address": {
      "street": "",
      "city": "",
      "state": "",
      "pincode": ""
    },
    "contact": {
      "mobile": "",
      "email": ""
    }
  },
  "products_services": [
    {
      "sl_no": "",
      "description": "",
      "hsn_code": "",
      "quantity": 0,
      "rate": 0,
      "taxable_value": 0,
      "gst_percentage": 0,
      "gst_amount": 0,
      "amount": 0
    }
  ],
  "additional_charges": [
    {
      "description": "",
      "amount": 0
    }
  ],
  "summary": {
    "total_taxable_amount": 0,
    "total_gst_amount": 0,
    "total_amount": 0,
    "total_items": 0,
    "total_quantity": 0
  },
  "tax_details": {
    "igst_percentage": 0,
    "igst_amount": 0,
    "cgst_percentage": 0,
    "cgst_amount": 0,
    "sgst_percentage": 0,
    "sgst_amount": 0
  },
  "payment_details": {
    "making_charges": 0,
    "debit_card_charges": 0,
    "shipping_charges": 0
  }
}

Return ONLY valid JSON. Do not include any text before or after the JSON and do not use markdown code blocks.`

const imageExtractionPrompt = `Please analyze this invoice and extract the information in the following JSON format:
{
  "invoice_number": "",
  "date": "",
  "customer_details": {
    "name": "",
    "phone": "",
    "email": "",
    "address": "",
    "gst_number": ""
  },
  "business_details": {
    "name": "",
    "address": "",
    "gst_number": "",
    "contact": ""
  },
  "products_services": [
    {
      "description": "",
      "quantity": 0,
      "rate": 0,
      "amount": 0,
      "discount_percentage": 0,
      "discount_amount": 0
    }
  ],
  "total": 0,
  "tax_details": {
    "igst_percentage": 0,
    "igst_amount": 0,
    "cgst_percentage": 0,
    "cgst_amount": 0,
    "sgst_percentage": 0,
    "sgst_amount": 0
  }
}

Return ONLY valid JSON. Do not include any text before or after the JSON and do not use markdown code blocks.`

const genericExtractionPrompt = `Please analyze this invoice document and extract all available information in a structured JSON format. Follow these guidelines:

1. Identify and extract all key-value pairs present in the document
2. For any tabular data, preserve the structure and all columns
3. Capture all monetary values, quantities, and calculations
4. Include any metadata, headers, footers, and additional notes
5. Maintain original labels/keys as found in the document
6. Group related information logically (e.g., business details, customer details, product details)
7. Preserve any tax-related information with their original labels
8. Capture all dates, reference numbers, and identifiers
9. Include any terms, conditions, or special instructions
10. Extract contact information, addresses, and registration numbers

Format the response as a nested JSON object, creating appropriate groupings based on the document's structure. Return ONLY valid JSON without markdown code blocks.`

// promptFor picks the extraction prompt for a content type. The
// generic flavor ignores the source kind entirely.
func promptFor(contentType string, generic bool) string {
	if generic {
		return genericExtractionPrompt
	}
	if DetectKind(contentType) == KindPDF {
		return pdfExtractionPrompt
	}
	return imageExtractionPrompt
}
