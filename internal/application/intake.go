package app

import (
	"context"
	"fmt"
	"log"

	"agrisight/internal/domain/entity"
	"agrisight/internal/domain/port"
)

// IntakeService — оркестратор конвейера обработки снимка:
// улучшение → фильтр безопасности → определение болезни → запись результата.
// Статус записи меняется строго один раз, терминальные состояния финальны.
type IntakeService struct {
	store      port.ImageStore
	scans      port.ScanRepository
	enhancer   port.ImageEnhancer
	classifier port.ImageClassifier
	identifier port.DiseaseIdentifier
	notifier   port.Notifier

	// strictNoResult=true превращает заглушку "No disease detected"
	// в статус failed вместо identified. По умолчанию выключено.
	strictNoResult bool
}

// NewIntakeService создаёт оркестратор конвейера.
func NewIntakeService(
	store port.ImageStore,
	scans port.ScanRepository,
	enhancer port.ImageEnhancer,
	classifier port.ImageClassifier,
	identifier port.DiseaseIdentifier,
	notifier port.Notifier,
	strictNoResult bool,
) *IntakeService {
	return &IntakeService{
		store:          store,
		scans:          scans,
		enhancer:       enhancer,
		classifier:     classifier,
		identifier:     identifier,
		notifier:       notifier,
		strictNoResult: strictNoResult,
	}
}

// Submit прогоняет сырой снимок через весь конвейер и возвращает запись
// в терминальном состоянии. Ошибки этапов гасятся здесь и превращаются
// в статус записи; наружу уходит ошибка только если не удалось создать
// саму запись.
func (s *IntakeService) Submit(ctx context.Context, raw []byte, name, cropType string) (*entity.ScanRecord, error) {
	rec := entity.NewScanRecord(name, cropType)
	if err := s.scans.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrPersistence, err)
	}

	if err := s.store.Put(ctx, name, raw); err != nil {
		return s.fail(ctx, rec, "raw artifact store failed: "+err.Error()), nil
	}

	clean, enhanced, err := s.enhancer.Enhance(ctx, raw)
	if err != nil {
		// Сбой улучшения не уведомляем: пользователю нечего показать.
		return s.fail(ctx, rec, "enhancement failed: "+err.Error()), nil
	}

	cleanName := entity.CleanName(name)
	enhancedName := entity.EnhancedName(cleanName)
	if err := s.store.Put(ctx, cleanName, clean); err != nil {
		return s.fail(ctx, rec, "clean artifact store failed: "+err.Error()), nil
	}
	if err := s.store.Put(ctx, enhancedName, enhanced); err != nil {
		return s.fail(ctx, rec, "enhanced artifact store failed: "+err.Error()), nil
	}

	rec.ImagePath = enhancedName
	s.resolve(ctx, rec, enhanced)
	return rec, nil
}

// Upload сохраняет снимок и создаёт запись без запуска анализа.
// Анализ запускается отдельно через Analyze.
func (s *IntakeService) Upload(ctx context.Context, raw []byte, name, cropType string) (*entity.ScanRecord, error) {
	rec := entity.NewScanRecord(name, cropType)
	if err := s.scans.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrPersistence, err)
	}

	if err := s.store.Put(ctx, name, raw); err != nil {
		return s.fail(ctx, rec, "raw artifact store failed: "+err.Error()), nil
	}

	return rec, nil
}

// Analyze повторно запускает фильтр и определение болезни для уже
// загруженного снимка (ручная загрузка через веб без автоанализа).
func (s *IntakeService) Analyze(ctx context.Context, scanID uint, cropType string) (*entity.ScanRecord, error) {
	rec, err := s.scans.Get(ctx, scanID)
	if err != nil {
		return nil, err
	}

	// Терминальные записи не трогаем: статус меняется строго один раз.
	if rec.Terminal() {
		return rec, nil
	}

	if cropType != "" {
		rec.CropType = cropType
	}

	imageData, err := s.store.Get(ctx, rec.ImagePath)
	if err != nil {
		return s.fail(ctx, rec, "artifact read failed: "+err.Error()), nil
	}

	s.resolve(ctx, rec, imageData)
	return rec, nil
}

// GetScan возвращает запись по идентификатору.
func (s *IntakeService) GetScan(ctx context.Context, id uint) (*entity.ScanRecord, error) {
	return s.scans.Get(ctx, id)
}

// resolve выполняет хвост конвейера над готовым изображением:
// классификация, решение фильтра, определение болезни, запись и уведомление.
func (s *IntakeService) resolve(ctx context.Context, rec *entity.ScanRecord, imageData []byte) {
	verdict, err := s.classifier.Classify(ctx, imageData)
	if err != nil {
		s.fail(ctx, rec, "classification failed: "+err.Error())
		return
	}

	if decision := Gate(verdict); !decision.Accepted {
		rec.Status = entity.ScanRejected
		rec.Description = decision.Reason
		s.persist(ctx, rec)
		s.notifier.SendText("🚫 Снимок отклонён: " + decision.Reason)
		return
	}

	result, err := s.identifier.Identify(ctx, imageData, rec.CropType)
	if err != nil {
		s.fail(ctx, rec, "identification failed: "+err.Error())
		return
	}

	if !result.Conclusive && s.strictNoResult {
		s.fail(ctx, rec, "identification inconclusive: poll budget exhausted")
		return
	}

	rec.Status = entity.ScanIdentified
	rec.DiseaseLabel = result.Disease
	rec.Confidence = result.Confidence
	rec.Description = result.Description
	s.persist(ctx, rec)

	caption := fmt.Sprintf("🌿 Результат анализа\nБолезнь: %s\nУверенность: %.1f%%\nСкан: %d",
		result.Disease, result.Confidence*100, rec.ID)
	s.notifier.SendPhoto(imageData, caption)
}

// fail переводит запись в статус failed с описанием этапа.
func (s *IntakeService) fail(ctx context.Context, rec *entity.ScanRecord, desc string) *entity.ScanRecord {
	rec.Status = entity.ScanFailed
	rec.Description = desc
	s.persist(ctx, rec)
	return rec
}

// persist сохраняет запись; сбой записи логируется, результат в памяти
// всё равно возвращается вызывающему.
func (s *IntakeService) persist(ctx context.Context, rec *entity.ScanRecord) {
	if err := s.scans.Update(ctx, rec); err != nil {
		log.Printf("Error updating scan %d: %v", rec.ID, err)
	}
}
