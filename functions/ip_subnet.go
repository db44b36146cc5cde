// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"
	"regexp"
	"strconv"
	"strings"

	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

var subnetRegex = regexp.MustCompile(`^/(?P<subnet>\d+)$`)

// IPSubnet implements ip_subnet(value, subnet).
type IPSubnet struct{}

// Identifier implements remap.Function.
func (IPSubnet) Identifier() string { return "ip_subnet" }

// Parameters implements remap.Function.
func (IPSubnet) Parameters() []remap.Parameter {
	return []remap.Parameter{
		{Keyword: "value", Accepts: remap.IsKind(value.KindString), Required: true},
		{Keyword: "subnet", Accepts: remap.IsKind(value.KindString), Required: true},
	}
}

// Compile implements remap.Function. A literal subnet is validated here
// so malformed masks fail compilation instead of every record.
func (IPSubnet) Compile(args *remap.ArgumentList) (remap.Expression, error) {
	addr, err := args.Required("value")
	if err != nil {
		return nil, err
	}
	subnet, err := args.Required("subnet")
	if err != nil {
		return nil, err
	}

	fn := &ipSubnetFn{value: addr, subnet: subnet}

	subnetLit, ok := literalString(subnet)
	if !ok {
		return fn, nil
	}
	if err := validateSubnet(subnetLit); err != nil {
		return nil, args.InvalidArgument("subnet", err)
	}
	if addrLit, ok := literalString(addr); ok {
		_, err := MaskIP(addrLit, subnetLit)
		fn.validated = err == nil
	}
	return fn, nil
}

func literalString(expr remap.Expression) (string, bool) {
	lit, ok := expr.(remap.LiteralExpression)
	if !ok {
		return "", false
	}
	s, err := lit.Literal().TryString()
	return s, err == nil
}

type ipSubnetFn struct {
	value  remap.Expression
	subnet remap.Expression
	// validated is set when both operands are literals that mask cleanly.
	validated bool
}

func (f *ipSubnetFn) Execute(state *remap.ProgramState, obj object.Object) (value.Value, error) {
	addr, err := executeString(f.value, state, obj)
	if err != nil {
		return value.Value{}, err
	}
	subnet, err := executeString(f.subnet, state, obj)
	if err != nil {
		return value.Value{}, err
	}
	masked, err := MaskIP(addr, subnet)
	if err != nil {
		return value.Value{}, err
	}
	return value.String(masked), nil
}

func (f *ipSubnetFn) TypeDef(state *remap.CompilerState) remap.TypeDef {
	td := f.value.TypeDef(state).FallibleUnless(value.KindString).
		Merge(f.subnet.TypeDef(state).FallibleUnless(value.KindString)).
		WithConstraint(value.KindString)
	if !f.validated {
		td.Fallible = true
	}
	return td
}

// MaskIP masks address with subnet, which is either a prefix length such
// as "/16" or an address-shaped mask such as "255.255.0.0". Both must be
// of the same IP family.
func MaskIP(address, subnet string) (string, error) {
	addr, err := netip.ParseAddr(address)
	if err != nil {
		return "", fmt.Errorf("unable to parse IP address: %w", err)
	}

	var mask netip.Addr
	if strings.HasPrefix(subnet, "/") {
		bits, err := parseSubnet(subnet)
		if err != nil {
			return "", err
		}
		if addr.Is4() {
			if bits > 32 {
				return "", errors.New("subnet cannot be greater than 32 for ipv4 addresses")
			}
			mask = netip.AddrFrom4([4]byte(GetMaskBits(bits, 4)))
		} else {
			if bits > 128 {
				return "", errors.New("subnet cannot be greater than 128 for ipv6 addresses")
			}
			mask = netip.AddrFrom16([16]byte(GetMaskBits(bits, 16)))
		}
	} else {
		mask, err = netip.ParseAddr(subnet)
		if err != nil {
			return "", fmt.Errorf("unable to parse mask: %w", err)
		}
	}

	masked, err := maskIPs(addr, mask)
	if err != nil {
		return "", err
	}
	return masked.String(), nil
}

// validateSubnet checks what can be known about a subnet without the
// address it will be applied to.
func validateSubnet(subnet string) error {
	if strings.HasPrefix(subnet, "/") {
		bits, err := parseSubnet(subnet)
		if err != nil {
			return err
		}
		if bits > 128 {
			return errors.New("subnet cannot be greater than 128")
		}
		return nil
	}
	if _, err := netip.ParseAddr(subnet); err != nil {
		return fmt.Errorf("unable to parse mask: %w", err)
	}
	return nil
}

// parseSubnet parses a subnet in the form "/8" and returns the number.
func parseSubnet(subnet string) (uint32, error) {
	m := subnetRegex.FindStringSubmatch(subnet)
	if m == nil {
		return 0, fmt.Errorf("%s is not a valid subnet", subnet)
	}
	bits, err := strconv.ParseUint(m[subnetRegex.SubexpIndex("subnet")], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid subnet", subnet)
	}
	return uint32(bits), nil
}

// maskIPs ANDs addr with mask byte by byte for IPv4 and segment by
// segment for IPv6.
func maskIPs(addr, mask netip.Addr) (netip.Addr, error) {
	switch {
	case addr.Is4() && mask.Is4():
		a, m := addr.As4(), mask.As4()
		for i := range a {
			a[i] &= m[i]
		}
		return netip.AddrFrom4(a), nil
	case addr.Is6() && mask.Is6():
		a, m := addr.As16(), mask.As16()
		for i := 0; i < len(a); i += 2 {
			seg := binary.BigEndian.Uint16(a[i:]) & binary.BigEndian.Uint16(m[i:])
			binary.BigEndian.PutUint16(a[i:], seg)
		}
		return netip.AddrFrom16(a), nil
	case addr.Is6():
		return netip.Addr{}, errors.New("attempting to mask an ipv6 address with an ipv4 mask")
	default:
		return netip.Addr{}, errors.New("attempting to mask an ipv4 address with an ipv6 mask")
	}
}

// GetMaskBits returns bytes bytes with the leftmost bits bits set.
func GetMaskBits(bits uint32, bytes int) []byte {
	mask := make([]byte, 0, bytes)
	for bits > 0 {
		n := min(bits, 8)
		mask = append(mask, byte(0xff<<(8-n)))
		bits -= n
	}
	for len(mask) < bytes {
		mask = append(mask, 0)
	}
	return mask
}
