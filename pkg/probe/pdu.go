package probe

import (
	"fmt"
	"strings"

	"github.com/gosnmp/gosnmp"
)

func pduToString(pdu gosnmp.SnmpPDU) (string, error) {
	switch pdu.Type {
	case gosnmp.OctetString:
		bs, ok := pdu.Value.([]byte)
		if !ok {
			return "", fmt.Errorf("OctetString is not a []byte but %T", pdu.Value)
		}
		return strings.ToValidUTF8(string(bs), "�"), nil
	case gosnmp.Counter32, gosnmp.Counter64, gosnmp.Integer, gosnmp.Gauge32, gosnmp.TimeTicks, gosnmp.Uinteger32:
		return gosnmp.ToBigInt(pdu.Value).String(), nil
	case gosnmp.ObjectIdentifier, gosnmp.IPAddress:
		v, ok := pdu.Value.(string)
		if !ok {
			return "", fmt.Errorf("%v is not a string but %T", pdu.Type, pdu.Value)
		}
		return strings.TrimPrefix(v, "."), nil
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView, gosnmp.Null:
		return "", fmt.Errorf("no value for %s: %v", pdu.Name, pdu.Type)
	default:
		return "", fmt.Errorf("unsupported type: '%v'", pdu.Type)
	}
}
