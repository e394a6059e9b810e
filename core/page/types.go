package page

import "fmt"

// Sizes and offsets of the structures common to every page.
const (
	PageSize = 16384 // only 16 KiB pages are supported

	FilHeaderStart = 0
	FilHeaderSize  = 38
	FilHeaderEnd   = FilHeaderStart + FilHeaderSize

	FilTrailerSize  = 8
	FilTrailerStart = PageSize - FilTrailerSize
)

// undefinedPageNo marks an unset prev/next link in the fil header.
const undefinedPageNo uint32 = 0xFFFFFFFF

// PageType is the 16-bit type code stored at offset 24 of every page.
// Codes outside the known set are kept as-is.
type PageType uint16

const (
	PageTypeAllocated    PageType = 0     // freshly allocated
	PageTypeUndoLog      PageType = 2     // undo log
	PageTypeInode        PageType = 3     // file segment inodes
	PageTypeIbufFreeList PageType = 4     // insert buffer free list
	PageTypeIbufBitmap   PageType = 5     // insert buffer bitmap
	PageTypeSys          PageType = 6     // system page
	PageTypeTrxSys       PageType = 7     // transaction system data
	PageTypeFspHdr       PageType = 8     // file space header
	PageTypeXdes         PageType = 9     // extent descriptor
	PageTypeBlob         PageType = 10    // uncompressed BLOB
	PageTypeZBlob        PageType = 11    // first compressed BLOB
	PageTypeZBlob2       PageType = 12    // subsequent compressed BLOB
	PageTypeIndex        PageType = 17855 // B-tree node
)

var pageTypeNames = map[PageType]string{
	PageTypeAllocated:    "ALLOCATED",
	PageTypeUndoLog:      "UNDO_LOG",
	PageTypeInode:        "INODE",
	PageTypeIbufFreeList: "IBUF_FREE_LIST",
	PageTypeIbufBitmap:   "IBUF_BITMAP",
	PageTypeSys:          "SYS",
	PageTypeTrxSys:       "TRX_SYS",
	PageTypeFspHdr:       "FSP_HDR",
	PageTypeXdes:         "XDES",
	PageTypeBlob:         "BLOB",
	PageTypeZBlob:        "ZBLOB",
	PageTypeZBlob2:       "ZBLOB2",
	PageTypeIndex:        "INDEX",
}

// Known reports whether t is one of the enumerated page types.
func (t PageType) Known() bool {
	_, ok := pageTypeNames[t]
	return ok
}

func (t PageType) String() string {
	if name, ok := pageTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint16(t))
}
