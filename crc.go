package jffs2

import "hash/crc32"

// mtdCRC32 computes the CRC-32 variant used throughout the MTD subsystem
// and, by extension, JFFS2: the standard IEEE-802.3 polynomial with
// reflected input/output and 0xFFFFFFFF init/final XOR. That is exactly
// what the stdlib's crc32.IEEE table already computes, so there is no
// third-party library to reach for here - every pack repository that
// checksums with CRC-32 goes through hash/crc32 too.
func mtdCRC32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
