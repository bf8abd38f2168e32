package matching

import "errors"

var (
	// ErrEmptyDocument は入力文書が0バイトの場合のエラー
	ErrEmptyDocument = errors.New("document is empty")

	// ErrUnreadableDocument は文書を宣言されたフォーマットとして解釈できない場合のエラー
	ErrUnreadableDocument = errors.New("document could not be parsed")

	// ErrNoTextContent は抽出結果に空白以外のテキストが含まれない場合のエラー
	ErrNoTextContent = errors.New("document contains no extractable text")

	// ErrInsufficientText はランキング対象のテキストが空の場合のエラー
	ErrInsufficientText = errors.New("text is too short to rank")

	// ErrCategoryNotFound は指定カテゴリの参照文書が登録されていない場合のエラー
	ErrCategoryNotFound = errors.New("category not found")

	// ErrRankerFailure は外部ランキング処理が失敗した場合のエラー
	ErrRankerFailure = errors.New("key term ranking failed")

	// ErrEmbeddingUnavailable はEmbeddingを生成できなかった場合のエラー
	ErrEmbeddingUnavailable = errors.New("embedding could not be generated")

	// ErrScoreOutOfRange はコサイン類似度が [-1, 1] を外れた場合のエラー
	// 範囲外の値はクランプせず計算異常として扱う
	ErrScoreOutOfRange = errors.New("similarity score out of range")

	// ErrStoreUnavailable はストアへの接続自体が失敗した場合のエラー
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrPersistence はスコア算出後の書き込みが失敗した場合のエラー
	// パイプラインはこのエラーでは中断せず、結果を劣化扱いで返す
	ErrPersistence = errors.New("failed to persist comparison record")
)

// エラー種別ごとの安定したコード
// HTTP層はこのコードだけを見てステータスを決める
const (
	CodeValidation         = "validation_error"
	CodeNotFound           = "not_found"
	CodeExternalCapability = "external_capability_error"
	CodeStore              = "store_error"
	CodePersistence        = "persistence_error"
	CodeInternal           = "internal_error"
)

// ErrorCode はパイプラインのエラーを安定したエラーコードに対応付けます
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrEmptyDocument),
		errors.Is(err, ErrUnreadableDocument),
		errors.Is(err, ErrNoTextContent),
		errors.Is(err, ErrInsufficientText):
		return CodeValidation
	case errors.Is(err, ErrCategoryNotFound):
		return CodeNotFound
	case errors.Is(err, ErrRankerFailure),
		errors.Is(err, ErrEmbeddingUnavailable),
		errors.Is(err, ErrScoreOutOfRange):
		return CodeExternalCapability
	case errors.Is(err, ErrStoreUnavailable):
		return CodeStore
	case errors.Is(err, ErrPersistence):
		return CodePersistence
	default:
		return CodeInternal
	}
}
