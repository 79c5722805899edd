// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"bytes"
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

var oidSignedData = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 2}

var (
	tagContext0 = cbasn1.Tag(0).Constructed().ContextSpecific()
	tagContext1 = cbasn1.Tag(1).Constructed().ContextSpecific()
)

// Structure is the structural view of a certificate produced by the ASN1 backend.
//
// Only the outer envelope and the fixed leading fields of the TBSCertificate are
// decoded; extensions are left inside RawTBSCertificate. Nothing is verified.
type Structure struct {
	Raw                     []byte // Complete DER certificate.
	RawTBSCertificate       []byte
	RawIssuer               []byte
	RawSubject              []byte
	RawSubjectPublicKeyInfo []byte

	Version            int // 1-based, as displayed by most tools.
	SerialNumber       *big.Int
	SignatureAlgorithm asn1.ObjectIdentifier
	Issuer             pkix.Name
	Subject            pkix.Name
	NotBefore          time.Time
	NotAfter           time.Time
	Signature          []byte
}

// ASN1 decodes certificates into [Structure] values by walking the DER encoding
// with [cryptobyte], without going through crypto/x509.
//
// [cryptobyte]: https://pkg.go.dev/golang.org/x/crypto/cryptobyte
type ASN1 struct {
	certBlockType string
}

// NewASN1 creates a new ASN1 backend.
func NewASN1() *ASN1 {
	return &ASN1{certBlockType: pemCertificateType}
}

// DecodeDER decodes a single DER certificate.
func (a *ASN1) DecodeDER(data []byte) ([]*Structure, error) {
	s, err := ParseStructure(data)
	if err != nil {
		return nil, err
	}
	return []*Structure{s}, nil
}

// DecodePEM decodes every certificate block of a PEM chain.
func (a *ASN1) DecodePEM(data []byte) ([]*Structure, error) {
	return decodePEMBlocks(data, a.certBlockType, ParseStructure)
}

// DecodePKCS7 decodes the plain certificate choices of a SignedData bundle.
// Attribute certificates and other certificate choices are dropped.
func (a *ASN1) DecodePKCS7(data []byte) ([]*Structure, error) {
	ders, err := signedDataCertificates(data)
	if err != nil {
		return nil, err
	}

	out := make([]*Structure, 0, len(ders))
	for _, der := range ders {
		s, err := ParseStructure(der)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ParseStructure parses exactly one DER certificate.
func ParseStructure(der []byte) (*Structure, error) {
	input := cryptobyte.String(der)

	var element cryptobyte.String
	if !input.ReadASN1Element(&element, cbasn1.SEQUENCE) {
		return nil, malformed("certificate")
	}
	if !input.Empty() {
		return nil, ErrTrailingData
	}

	s := &Structure{Raw: bytes.Clone(element)}

	var cert cryptobyte.String
	if !element.ReadASN1(&cert, cbasn1.SEQUENCE) {
		return nil, malformed("certificate")
	}

	var tbsElement cryptobyte.String
	if !cert.ReadASN1Element(&tbsElement, cbasn1.SEQUENCE) {
		return nil, malformed("tbs certificate")
	}
	s.RawTBSCertificate = bytes.Clone(tbsElement)
	if err := s.parseTBS(tbsElement); err != nil {
		return nil, err
	}

	var sigAI cryptobyte.String
	if !cert.ReadASN1(&sigAI, cbasn1.SEQUENCE) || !sigAI.ReadASN1ObjectIdentifier(&s.SignatureAlgorithm) {
		return nil, malformed("signature algorithm")
	}

	var sig asn1.BitString
	if !cert.ReadASN1BitString(&sig) {
		return nil, malformed("signature")
	}
	s.Signature = bytes.Clone(sig.RightAlign())

	if !cert.Empty() {
		return nil, malformed("certificate")
	}

	return s, nil
}

func (s *Structure) parseTBS(element cryptobyte.String) error {
	var tbs cryptobyte.String
	if !element.ReadASN1(&tbs, cbasn1.SEQUENCE) {
		return malformed("tbs certificate")
	}

	if !tbs.ReadOptionalASN1Integer(&s.Version, tagContext0, 0) {
		return malformed("version")
	}
	s.Version++

	s.SerialNumber = new(big.Int)
	if !tbs.ReadASN1Integer(s.SerialNumber) {
		return malformed("serial number")
	}

	if !tbs.SkipASN1(cbasn1.SEQUENCE) {
		return malformed("tbs signature algorithm")
	}

	var issuer, validity, subject, spki cryptobyte.String
	if !tbs.ReadASN1Element(&issuer, cbasn1.SEQUENCE) {
		return malformed("issuer")
	}
	if !tbs.ReadASN1(&validity, cbasn1.SEQUENCE) {
		return malformed("validity")
	}

	var ok bool
	if s.NotBefore, ok = readTime(&validity); !ok {
		return malformed("validity")
	}
	if s.NotAfter, ok = readTime(&validity); !ok {
		return malformed("validity")
	}

	if !tbs.ReadASN1Element(&subject, cbasn1.SEQUENCE) {
		return malformed("subject")
	}
	if !tbs.ReadASN1Element(&spki, cbasn1.SEQUENCE) {
		return malformed("subject public key info")
	}

	s.RawIssuer = bytes.Clone(issuer)
	s.RawSubject = bytes.Clone(subject)
	s.RawSubjectPublicKeyInfo = bytes.Clone(spki)

	var err error
	if s.Issuer, err = parseName(s.RawIssuer); err != nil {
		return err
	}
	if s.Subject, err = parseName(s.RawSubject); err != nil {
		return err
	}

	return nil
}

func readTime(s *cryptobyte.String) (time.Time, bool) {
	var t time.Time
	switch {
	case s.PeekASN1Tag(cbasn1.UTCTime):
		return t, s.ReadASN1UTCTime(&t)
	case s.PeekASN1Tag(cbasn1.GeneralizedTime):
		return t, s.ReadASN1GeneralizedTime(&t)
	default:
		return t, false
	}
}

func parseName(raw []byte) (pkix.Name, error) {
	var (
		rdn  pkix.RDNSequence
		name pkix.Name
	)

	rest, err := asn1.Unmarshal(raw, &rdn)
	if err != nil {
		return name, fmt.Errorf("%w: name: %w", ErrParseCertificate, err)
	}
	if len(rest) != 0 {
		return name, malformed("name")
	}

	name.FillFromRDNSequence(&rdn)
	return name, nil
}

// signedDataCertificates unwraps ContentInfo and SignedData and returns the DER
// of each plain certificate in the certificates set, in set order.
//
//	ContentInfo ::= SEQUENCE { contentType OID, content [0] EXPLICIT ANY }
//	SignedData  ::= SEQUENCE { version, digestAlgorithms SET, encapContentInfo SEQUENCE,
//	                           certificates [0] IMPLICIT SET OPTIONAL,
//	                           crls [1] IMPLICIT SET OPTIONAL, signerInfos SET }
func signedDataCertificates(der []byte) ([][]byte, error) {
	input := cryptobyte.String(der)

	var contentInfo cryptobyte.String
	if !input.ReadASN1(&contentInfo, cbasn1.SEQUENCE) || !input.Empty() {
		return nil, fmt.Errorf("%w: malformed ContentInfo", ErrParsePKCS7)
	}

	var contentType asn1.ObjectIdentifier
	if !contentInfo.ReadASN1ObjectIdentifier(&contentType) {
		return nil, fmt.Errorf("%w: malformed content type", ErrParsePKCS7)
	}
	if !contentType.Equal(oidSignedData) {
		return nil, fmt.Errorf("%w: got %s", ErrNotSignedData, contentType)
	}

	var content, signedData cryptobyte.String
	if !contentInfo.ReadASN1(&content, tagContext0) || !contentInfo.Empty() ||
		!content.ReadASN1(&signedData, cbasn1.SEQUENCE) || !content.Empty() {
		return nil, fmt.Errorf("%w: malformed content", ErrParsePKCS7)
	}

	var version int64
	if !signedData.ReadASN1Integer(&version) ||
		!signedData.SkipASN1(cbasn1.SET) ||
		!signedData.SkipASN1(cbasn1.SEQUENCE) {
		return nil, fmt.Errorf("%w: malformed SignedData", ErrParsePKCS7)
	}

	var (
		set     cryptobyte.String
		present bool
	)
	if !signedData.ReadOptionalASN1(&set, &present, tagContext0) ||
		!signedData.SkipOptionalASN1(tagContext1) ||
		!signedData.SkipASN1(cbasn1.SET) ||
		!signedData.Empty() {
		return nil, fmt.Errorf("%w: malformed SignedData", ErrParsePKCS7)
	}

	ders := [][]byte{}
	for !set.Empty() {
		var (
			choice cryptobyte.String
			tag    cbasn1.Tag
		)
		if !set.ReadAnyASN1Element(&choice, &tag) {
			return nil, fmt.Errorf("%w: malformed certificate set", ErrParsePKCS7)
		}
		// Plain certificates are universal SEQUENCEs; every other choice is context tagged.
		if tag != cbasn1.SEQUENCE {
			continue
		}
		ders = append(ders, choice)
	}

	return ders, nil
}

func malformed(what string) error {
	return fmt.Errorf("%w: malformed %s", ErrParseCertificate, what)
}
