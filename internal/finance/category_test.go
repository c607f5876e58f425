package finance

import "testing"

func TestClassifyDefaultsToInvoiced(t *testing.T) {
	if got := Classify(nil); got != CategoryInvoiced {
		t.Fatalf("expected invoiced for no attributes, got %s", got)
	}
	attrs := []AttributeValue{
		{AttributeName: "Phí lưu kho", Value: "true"},
		{AttributeName: AttrPaidOnBehalf, Value: "false"},
	}
	if got := Classify(attrs); got != CategoryInvoiced {
		t.Fatalf("expected invoiced for unset tags, got %s", got)
	}
}

func TestClassifyPaidOnBehalf(t *testing.T) {
	attrs := []AttributeValue{{AttributeName: AttrPaidOnBehalf, Value: "true"}}
	if got := Classify(attrs); got != CategoryPaidOnBehalf {
		t.Fatalf("expected paid-on-behalf, got %s", got)
	}
}

func TestClassifyNoInvoice(t *testing.T) {
	attrs := []AttributeValue{{AttributeName: AttrNoInvoice, Value: "true"}}
	if got := Classify(attrs); got != CategoryNoInvoice {
		t.Fatalf("expected no-invoice, got %s", got)
	}
}

func TestClassifyPaidOnBehalfWinsOverNoInvoice(t *testing.T) {
	attrs := []AttributeValue{
		{AttributeName: AttrNoInvoice, Value: "true"},
		{AttributeName: AttrPaidOnBehalf, Value: "true"},
	}
	if got := Classify(attrs); got != CategoryPaidOnBehalf {
		t.Fatalf("expected paid-on-behalf to take precedence, got %s", got)
	}
}
