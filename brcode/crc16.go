package brcode

import "fmt"

// Perfil CRC-16/CCITT-FALSE exigido pelo BR Code.
const (
	crcPoly uint16 = 0x1021
	crcInit uint16 = 0xFFFF
)

var crcTable = func() [256]uint16 {
	var table [256]uint16
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ crcPoly
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}()

// CRC16 calcula o CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF, sem
// reflexão e sem XOR final) sobre data.
func CRC16(data []byte) uint16 {
	crc := crcInit
	for _, b := range data {
		crc = (crc << 8) ^ crcTable[byte(crc>>8)^b]
	}
	return crc
}

// FormatCRC16 devolve o CRC em 4 dígitos hexadecimais maiúsculos.
func FormatCRC16(crc uint16) string {
	return fmt.Sprintf("%04X", crc)
}

// Checksum é o atalho usado pelo montador: CRC16 sobre os bytes UTF-8 de s,
// já formatado.
func Checksum(s string) string {
	return FormatCRC16(CRC16([]byte(s)))
}
